package auth

// Claims es la identidad del ganadero autenticado. UserID es el dueño del hato.
type Claims struct {
	UserID  string
	Email   string
	RanchID string // opcional; lo manda el IAM cuando el usuario opera un rancho
}
