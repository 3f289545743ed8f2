package transport

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

type ProfileUpdateRequest struct {
	Name string `json:"name"`
}

type TaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Deadline    string  `json:"deadline"`
	Priority    int     `json:"priority"`
	Percent     float64 `json:"percent"`
}

type SubtaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Percent     float64 `json:"percent"`
}

type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

type EventUpdateRequest struct {
	OldTitle string `json:"old_title"`
	OldDate  string `json:"old_date"`
	EventRequest
}
