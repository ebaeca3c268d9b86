package auth

// Claims es la identidad del dueño resuelta para un request.
type Claims struct {
	// UserID es el uid del dueño; los monos se guardan bajo esa clave.
	UserID string
}
