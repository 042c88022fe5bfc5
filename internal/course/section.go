package course

import (
	"fmt"
	"strconv"
	"strings"
)

// ModuleCount is the number of instructional modules in the course.
const ModuleCount = 5

// Section identifiers. Module sections are "module1" through "module5".
const (
	SectionWelcome    = "welcome"
	SectionAssessment = "assessment"

	modulePrefix = "module"
)

// ModuleID returns the section identifier for module number n.
func ModuleID(n int) string {
	return fmt.Sprintf("%s%d", modulePrefix, n)
}

// ModuleNumber parses a module section identifier. It reports false for
// anything that is not one of the course's module ids.
func ModuleNumber(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, modulePrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > ModuleCount || ModuleID(n) != id {
		return 0, false
	}
	return n, true
}

// IsModuleID reports whether id names one of the course modules.
func IsModuleID(id string) bool {
	_, ok := ModuleNumber(id)
	return ok
}

// SectionIDs returns all section identifiers in display order.
func SectionIDs() []string {
	ids := make([]string, 0, ModuleCount+2)
	ids = append(ids, SectionWelcome)
	for n := 1; n <= ModuleCount; n++ {
		ids = append(ids, ModuleID(n))
	}
	return append(ids, SectionAssessment)
}

// IsSectionID reports whether id is a known section.
func IsSectionID(id string) bool {
	if id == SectionWelcome || id == SectionAssessment {
		return true
	}
	return IsModuleID(id)
}
