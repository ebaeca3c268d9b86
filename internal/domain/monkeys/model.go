package monkeys

// Status del ciclo de vida. Un mono nunca se borra: tras 30 días sin actividad hiberna.
type Status string

const (
	StatusActive      Status = "active"
	StatusHibernating Status = "hibernating"
)

// Traits son los ocho atributos de personalidad (0-100) que el cliente define al crear el mono.
type Traits struct {
	AdventureSpirit int `json:"adventureSpirit"`
	Empathy         int `json:"empathy"`
	Independence    int `json:"independence"`
	Resilience      int `json:"resilience"`
	Security        int `json:"security"`
	SelfWorth       int `json:"selfWorth"`
	SocialSkill     int `json:"socialSkill"`
	Trust           int `json:"trust"`
}

// Mood es el estado emocional. Todos los campos viven en [0,100].
type Mood struct {
	Happiness  int `json:"happiness"`
	Loneliness int `json:"loneliness"`
	Energy     int `json:"energy"`
}

type ActivityType string

const (
	ActivityDaily       ActivityType = "daily"
	ActivityStatus      ActivityType = "status"
	ActivitySocial      ActivityType = "social"
	ActivityInteraction ActivityType = "interaction"
)

// Ref identifica a otro mono dentro de logs y notificaciones.
type Ref struct {
	ID        string `json:"odId"`
	Name      string `json:"name"`
	OwnerName string `json:"ownerName,omitempty"`
}

type ActivityEntry struct {
	Icon       string       `json:"icon"`
	Text       string       `json:"text"`
	Timestamp  int64        `json:"timestamp"` // ms epoch
	Type       ActivityType `json:"type"`
	WithMonkey *Ref         `json:"withMonkey,omitempty"`
}

type MessageType string

const (
	MessageTired  MessageType = "tired"
	MessageLonely MessageType = "lonely"
	MessageSad    MessageType = "sad"
)

// PendingMessage es la frase que el mono le dirá al dueño en su próxima visita.
// Solo hay una; un evento nuevo la sobrescribe.
type PendingMessage struct {
	Type      MessageType `json:"type"`
	Text      string      `json:"text"`
	Timestamp int64       `json:"timestamp"`
}

// Monkey es el registro persistido en monkeys/{odId}.
// Los timestamps son ms epoch, igual que los escribe el cliente web.
type Monkey struct {
	ID          string  `json:"odId"`
	Name        string  `json:"name"`
	OwnerName   string  `json:"ownerName,omitempty"`
	Personality string  `json:"personality,omitempty"`
	Traits      *Traits `json:"traits,omitempty"` // nil: el cliente no definió rasgos

	// nil = nunca inicializado (se usa DefaultMood)
	Mood        *Mood           `json:"mood,omitempty"`
	ActivityLog []ActivityEntry `json:"activityLog,omitempty"`

	Status           Status `json:"status,omitempty"`
	LastActive       int64  `json:"lastActive,omitempty"`
	LastVisitTime    int64  `json:"lastVisitTime,omitempty"`
	LastUpdated      int64  `json:"lastUpdated,omitempty"`
	HibernatingSince int64  `json:"hibernatingSince,omitempty"`
	CreatedAt        int64  `json:"createdAt,omitempty"`

	PendingMessage *PendingMessage `json:"pendingMessage,omitempty"`
}

// Ref devuelve la referencia corta usada en logs sociales y notificaciones.
func (m Monkey) Ref() Ref {
	return Ref{ID: m.ID, Name: m.Name, OwnerName: m.OwnerName}
}

// CurrentMood devuelve el mood guardado o el default si nunca se inicializó.
func (m Monkey) CurrentMood() Mood {
	if m.Mood == nil {
		return DefaultMood()
	}
	return m.Mood.Clamped()
}
