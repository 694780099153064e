package plan

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/tempo/pkg/task"
)

const idPrefix = "t-"

// IDGenerator issues sequential task identifiers. Each Service owns its own
// generator, so id sequences are deterministic per instance and tests never
// share hidden counter state.
type IDGenerator struct {
	next int
}

// NewIDGenerator starts a generator whose first id has the given number.
func NewIDGenerator(next int) *IDGenerator {
	if next < 1 {
		next = 1
	}
	return &IDGenerator{next: next}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	id := fmt.Sprintf("%s%d", idPrefix, g.next)
	g.next++
	return id
}

// seededGenerator resumes numbering after the highest id already persisted,
// so reloaded stores never reissue an identifier.
func seededGenerator(tasks []*task.Task) *IDGenerator {
	max := 0
	for _, t := range tasks {
		if t == nil || !strings.HasPrefix(t.ID, idPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(t.ID, idPrefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return NewIDGenerator(max + 1)
}
