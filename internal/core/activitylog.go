package core

import "strings"

// ActivityLog is one node of an ActivityLogSection tree. A node carrying
// emittedOutput is treated as a leaf even if it also has subsections.
type ActivityLog struct {
	EmittedOutput *StringValue     `json:"emittedOutput,omitempty"`
	Subsections   *ActivityLogList `json:"subsections,omitempty"`
}

type ActivityLogList struct {
	Values []ActivityLog `json:"_values"`
}

// CollectFragments walks the tree depth-first in document order and returns
// every emitted output fragment unchanged. The tree is assumed finite.
func CollectFragments(root ActivityLog) []string {
	out := []string{}
	collectInto(root, &out)
	return out
}

func collectInto(node ActivityLog, out *[]string) {
	if node.EmittedOutput != nil {
		*out = append(*out, node.EmittedOutput.Value)
		return
	}
	if node.Subsections == nil {
		return
	}
	for _, child := range node.Subsections.Values {
		collectInto(child, out)
	}
}

// CollectLog concatenates CollectFragments with no separator; fragments carry
// their own line breaks.
func CollectLog(root ActivityLog) string {
	return strings.Join(CollectFragments(root), "")
}
