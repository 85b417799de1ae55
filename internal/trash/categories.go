package trash

import "fmt"

// Categories is the closed, ordinally-indexed set of trash classes the
// detection oracle can emit. Oracles reference entries by index; probability
// vectors in stub mode have exactly this length.
var Categories = []string{
	"Plastic Bottle",
	"Glass Bottle",
	"Aluminum Can",
	"Paper/Cardboard",
	"Plastic Bag",
	"Styrofoam",
	"Fishing Net",
	"Cloth/Fabric",
	"Organic Waste",
	"Other",
}

// Count returns the number of known categories.
func Count() int {
	return len(Categories)
}

// Label maps a class id to its category name. Ids outside the known table
// fail closed to a generic label so an oracle with a larger label set cannot
// crash the pipeline.
func Label(classID int) string {
	if classID >= 0 && classID < len(Categories) {
		return Categories[classID]
	}
	return fmt.Sprintf("Class_%d", classID)
}
