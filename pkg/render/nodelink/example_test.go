package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/isostack/pkg/diagram"
	"github.com/matzehuels/isostack/pkg/render/nodelink"
)

func ExampleToDOT() {
	list := []diagram.Component{
		{ID: "base", Shape: "layer4x3", Position: "center"},
		{ID: "api", Shape: "microservice", Position: "top", RelativeToID: diagram.Ref("base")},
	}

	dot := nodelink.ToDOT(list, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "base" -> "api" [label="top"];
}
