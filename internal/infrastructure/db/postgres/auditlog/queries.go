package auditlog

const (
	InsertEntry = `
		INSERT INTO audit_logs (action, user_id)
		VALUES ($1, $2)
	`
	SelectEntries = `
		SELECT a.id, a.action, u.uuid, u.name, u.email, a.created_at
		FROM audit_logs a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
	`
)
