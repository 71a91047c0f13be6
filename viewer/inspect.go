package viewer

import (
	"fmt"
	"strconv"

	"github.com/pthm-cable/habitat/world"
)

// FieldDescriptor defines how to display a single organism attribute.
type FieldDescriptor struct {
	Label   string
	Visible func(o *world.Organism) bool // nil = always visible
	Value   func(o *world.Organism) string
}

// LabelValue is one rendered inspector row.
type LabelValue struct {
	Label, Value string
}

var organismFields = []FieldDescriptor{
	{Label: "Species", Value: func(o *world.Organism) string { return o.Species().Name }},
	{Label: "ID", Value: func(o *world.Organism) string { return strconv.FormatUint(o.ID(), 10) }},
	{Label: "Cell", Value: func(o *world.Organism) string {
		if loc, ok := o.Location(); ok {
			return loc.String()
		}
		return "-"
	}},
	{Label: "Age", Value: func(o *world.Organism) string {
		return fmt.Sprintf("%d / %d", o.Age(), o.Species().MaxAge)
	}},
	{
		Label:   "Food",
		Visible: func(o *world.Organism) bool { return o.Species().Hungers() },
		Value: func(o *world.Organism) string {
			return fmt.Sprintf("%d / %d", o.FoodLevel(), o.Species().MaxFood)
		},
	},
	{
		Label:   "Gender",
		Visible: func(o *world.Organism) bool { return o.Species().Kind == world.Animal },
		Value: func(o *world.Organism) string {
			if o.Male() {
				return "male"
			}
			return "female"
		},
	},
	{Label: "Health", Value: func(o *world.Organism) string {
		if o.Sick() {
			return "sick"
		}
		return "healthy"
	}},
	{Label: "Generation", Value: func(o *world.Organism) string { return strconv.Itoa(o.Generation()) }},
	{Label: "Children", Value: func(o *world.Organism) string { return strconv.Itoa(o.Children()) }},
	{
		Label:   "Kills",
		Visible: func(o *world.Organism) bool { return o.Species().Prey != 0 },
		Value:   func(o *world.Organism) string { return strconv.Itoa(o.Kills()) },
	},
	{
		Label:   "Died of",
		Visible: func(o *world.Organism) bool { return !o.Alive() },
		Value:   func(o *world.Organism) string { return o.Cause().String() },
	},
}

// Inspect returns the inspector rows for an organism.
func Inspect(o *world.Organism) []LabelValue {
	if o == nil {
		return nil
	}
	rows := make([]LabelValue, 0, len(organismFields))
	for _, fd := range organismFields {
		if fd.Visible != nil && !fd.Visible(o) {
			continue
		}
		rows = append(rows, LabelValue{Label: fd.Label, Value: fd.Value(o)})
	}
	return rows
}
