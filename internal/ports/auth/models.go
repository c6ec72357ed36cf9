package auth

import "strings"

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

// ProfileID identifica al dueño de las preferencias (layout de columnas).
// Con tenant, el mismo usuario tiene un layout por establecimiento.
// Vacío si no hay usuario.
func (c Claims) ProfileID() string {
	user := strings.TrimSpace(c.UserID)
	if user == "" {
		return ""
	}
	if tenant := strings.TrimSpace(c.TenantID); tenant != "" {
		return tenant + "/" + user
	}
	return user
}
