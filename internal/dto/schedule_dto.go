package dto

// ScheduleCell is one user+day cell of the month grid.
// Day-only 10:00–22:00, night-only 22:00–10:00, both = full 24h (10:00–10:00).
type ScheduleCell struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Both  int    `json:"both"`
}

type ScheduleMonthResponse struct {
	Month  string `json:"month"` // YYYY-MM
	ClubID uint   `json:"club_id"`
	Days   []string `json:"days"` // YYYY-MM-DD, every day of the month
	Staff  []ClubMember `json:"staff"`
	// Cells is keyed "<user_id>:<YYYY-MM-DD>".
	Cells            map[string]ScheduleCell `json:"cells"`
	EditableAll      bool                    `json:"editable_all"`
	EditableSelfOnly bool                    `json:"editable_self_only"`
	MyUserID         uint                    `json:"my_user_id"`
}

type SaveShiftRequest struct {
	UserID uint   `json:"user_id" validate:"required,min=1"`
	Date   string `json:"date"    validate:"required,datetime=2006-01-02"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Both   int    `json:"both"`
}

type ScheduleRow struct {
	UserID uint                    `json:"user_id"`
	Days   map[string]ScheduleCell `json:"days"`
}

type SaveMonthRequest struct {
	Month string        `json:"month" validate:"required,datetime=2006-01"`
	Rows  []ScheduleRow `json:"rows"`
}

type SaveResultResponse struct {
	Saved  int    `json:"saved,omitempty"`
	Action string `json:"action,omitempty"` // upsert | delete
}
