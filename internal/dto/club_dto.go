package dto

// ClubOption is one entry of the club-switcher toolbar: the clubs the
// current user may act on, with their membership role when applicable.
type ClubOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"` // empty for superadmin (implicit access)
}

type SetActiveClubRequest struct {
	ClubID uint `json:"club_id" validate:"required,min=1"`
}

type ActiveClubResponse struct {
	ClubID uint `json:"club_id"` // 0 when the user has no allowed clubs
}
