package documents

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Tree renders the manifest as a source tree for startup logs.
func (m Manifest) Tree() string {
	tree := treeprint.New()
	tree.SetValue("sources")

	branches := map[string]treeprint.Tree{}
	for _, r := range m.Results {
		branch, ok := branches[r.Kind]
		if !ok {
			branch = tree.AddBranch(r.Kind)
			branches[r.Kind] = branch
		}

		switch r.Status {
		case StatusLoaded:
			branch.AddNode(fmt.Sprintf("%s (%d documents)", r.Source, r.Count))
		case StatusSkipped:
			branch.AddNode(fmt.Sprintf("%s (skipped: %s)", r.Source, r.Reason))
		default:
			branch.AddNode(fmt.Sprintf("%s (failed: %s)", r.Source, r.Reason))
		}
	}

	return tree.String()
}
