package auth

// Claims representa la información extraída del token. UserID alimenta el
// performed_by de los eventos del historial.
type Claims struct {
	UserID string
	Email  string
	FarmID string
}
