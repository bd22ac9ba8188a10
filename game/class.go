package game

// Class is the zone a position belongs to.
type Class int

const (
	HomeClass Class = iota
	CommonClass
	HallwayClass
	GoalClass
	InvalidClass
)

func (c Class) String() string {
	switch c {
	case HomeClass:
		return "home"
	case CommonClass:
		return "common"
	case HallwayClass:
		return "hallway"
	case GoalClass:
		return "goal"
	default:
		return "invalid"
	}
}

// ClassOf classifies a position.
func ClassOf(position Position) Class {
	switch {
	case position == HOME:
		return HomeClass
	case IsCommonPosition(position):
		return CommonClass
	case IsHallwayPosition(position):
		return HallwayClass
	case position == GOAL:
		return GoalClass
	default:
		return InvalidClass
	}
}
