package standards

// RuleDimension is one axis used to scope a rule's applicability and to
// break conflict-resolution ties.
type RuleDimension string

const (
	DimensionRoomType  RuleDimension = "room_type"
	DimensionPlatform  RuleDimension = "platform"
	DimensionEcosystem RuleDimension = "ecosystem"
	DimensionTier      RuleDimension = "tier"
	DimensionUseCase   RuleDimension = "use_case"
	DimensionClient    RuleDimension = "client"
)

// dimensionPriority is the fixed total order over dimensions. A rule
// conditioned on a client outranks one conditioned on a room type,
// independent of the rules' own numeric priorities. This ordering is a
// static policy constant and never changes at runtime.
var dimensionPriority = map[RuleDimension]int{
	DimensionRoomType:  10,
	DimensionPlatform:  20,
	DimensionEcosystem: 30,
	DimensionTier:      40,
	DimensionUseCase:   50,
	DimensionClient:    60,
}

// AllDimensions lists the dimensions in ascending priority order.
var AllDimensions = []RuleDimension{
	DimensionRoomType,
	DimensionPlatform,
	DimensionEcosystem,
	DimensionTier,
	DimensionUseCase,
	DimensionClient,
}

// Priority returns the dimension's fixed priority weight. Unknown
// dimensions rank below every known one.
func (d RuleDimension) Priority() int {
	return dimensionPriority[d]
}

// IsValid returns true if d is one of the six known dimensions.
func (d RuleDimension) IsValid() bool {
	_, ok := dimensionPriority[d]
	return ok
}

// Dimensions holds the six dimension values of a design context.
// An empty string means the value is not specified; conditions over an
// unspecified dimension fail closed.
type Dimensions struct {
	RoomType  string `json:"room_type" yaml:"room_type"`
	Platform  string `json:"platform" yaml:"platform"`
	Ecosystem string `json:"ecosystem" yaml:"ecosystem"`
	Tier      string `json:"tier" yaml:"tier"`
	UseCase   string `json:"use_case" yaml:"use_case"`
	ClientID  string `json:"client" yaml:"client"`
}

// Value returns the context value for the given dimension. The second
// return is false when the dimension is unknown or the value is unset.
func (d Dimensions) Value(dim RuleDimension) (string, bool) {
	var v string
	switch dim {
	case DimensionRoomType:
		v = d.RoomType
	case DimensionPlatform:
		v = d.Platform
	case DimensionEcosystem:
		v = d.Ecosystem
	case DimensionTier:
		v = d.Tier
	case DimensionUseCase:
		v = d.UseCase
	case DimensionClient:
		v = d.ClientID
	default:
		return "", false
	}
	if v == "" {
		return "", false
	}
	return v, true
}
