package config

// RoadConfig tunes the highway core.
type RoadConfig struct {
	// FleetCapacity bounds the vehicles of each station; 0 keeps the default.
	FleetCapacity int `json:"fleet_capacity" validate:"gte=0,lte=1048576"`
	// RouteCache memoizes route answers between mutations.
	RouteCache bool `json:"route_cache"`
}
