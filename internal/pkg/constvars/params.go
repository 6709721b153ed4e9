package constvars

const (
	URLParamWaterbodyID = "waterbody_id"
)

const (
	MaxWaterbodyIDLength = 128
)
