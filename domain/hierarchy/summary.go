package hierarchy

import (
	"github.com/montanaflynn/stats"
)

// Summary describes the shape of a hierarchy
type Summary struct {
	Nodes        int     `json:"nodes"`
	Leaves       int     `json:"leaves"`
	MaxDepth     int     `json:"max_depth"`
	TopLevel     int     `json:"top_level"`
	MeanFanOut   float64 `json:"mean_fan_out"`
	MedianFanOut float64 `json:"median_fan_out"`
	MaxFanOut    float64 `json:"max_fan_out"`
}

// Summarize walks the hierarchy below root. The root itself is not counted as a
// node; fan-out figures cover every node with at least one child, root included.
func Summarize(root *Node) Summary {
	summary := Summary{TopLevel: root.Len()}

	var fanOut stats.Float64Data
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if depth > summary.MaxDepth {
			summary.MaxDepth = depth
		}
		if n.IsLeaf() {
			if depth > 0 {
				summary.Leaves++
			}
			return
		}
		fanOut = append(fanOut, float64(n.Len()))
		for _, key := range n.keys {
			summary.Nodes++
			walk(n.children[key], depth+1)
		}
	}
	walk(root, 0)

	if len(fanOut) == 0 {
		return summary
	}
	if mean, err := fanOut.Mean(); err == nil {
		summary.MeanFanOut = mean
	}
	if median, err := fanOut.Median(); err == nil {
		summary.MedianFanOut = median
	}
	if maxFanOut, err := fanOut.Max(); err == nil {
		summary.MaxFanOut = maxFanOut
	}
	return summary
}
