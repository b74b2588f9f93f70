package incident

import (
	"strconv"
	"strings"
)

// Records returns the direct children of root tagged recordTag, in document order.
func Records(root *Node, recordTag string) []*Node {
	if root == nil {
		return nil
	}
	return root.ChildrenByTag(recordTag)
}

// Filter returns the records whose priority field text, trimmed, equals the
// decimal form of value. The comparison is textual: "01" never matches 1.
// Records without the field or with blank text are skipped.
func Filter(root *Node, recordTag, priorityTag string, value int) []*Node {
	want := strconv.Itoa(value)

	var matches []*Node
	for _, record := range Records(root, recordTag) {
		field := record.Child(priorityTag)
		if field == nil {
			continue
		}
		got := strings.TrimSpace(field.Text)
		if got == "" || got != want {
			continue
		}
		matches = append(matches, record)
	}
	return matches
}
