package requests

type HealthCardPathParams struct {
	WaterbodyID string `json:"waterbody_id" validate:"waterbody_id_not_blank,max=128"`
}
