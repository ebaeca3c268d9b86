package relations

const (
	LevelStranger   = 0
	LevelBestFriend = 5
)

// Relation es la arista dirigida relations/{ownerId}/{friendId}.
// Cada lado guarda la suya; no hay simetría forzada.
type Relation struct {
	FriendID     string `json:"friendId"`
	FriendName   string `json:"friendName,omitempty"`
	Level        int    `json:"level"`
	SharedMemory string `json:"sharedMemory,omitempty"`
	UpdatedAt    int64  `json:"updatedAt,omitempty"` // ms epoch
}

func ClampLevel(level int) int {
	if level < LevelStranger {
		return LevelStranger
	}
	if level > LevelBestFriend {
		return LevelBestFriend
	}
	return level
}

// ApplyChange suma delta al nivel actual dentro de [0,5].
func ApplyChange(level, delta int) int {
	return ClampLevel(level + delta)
}
