package ignore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRenderSplitsSections checks that directories and files end up in
// their own sorted, root-anchored sections.
func TestRenderSplitsSections(t *testing.T) {
	t.Parallel()

	status := "?? zebra.txt\n" +
		"!! target/\n" +
		"?? alpha.txt\n" +
		"!! build/\n"

	require.Equal(t, `# Directories
/build/
/target/
# Files
/alpha.txt
/zebra.txt
`, Render(status))
}

// TestRenderDropsCoveredEntries checks that entries inside a listed
// directory are not repeated on their own.
func TestRenderDropsCoveredEntries(t *testing.T) {
	t.Parallel()

	status := "!! target/\n" +
		"!! target/debug/\n" +
		"?? target/debug/demo.d\n" +
		"?? notes.txt\n"

	require.Equal(t, `# Directories
/target/
# Files
/notes.txt
`, Render(status))
}

// TestRenderSkipsTrackedChanges checks that modified or staged entries
// never make it into the listing.
func TestRenderSkipsTrackedChanges(t *testing.T) {
	t.Parallel()

	status := " M src/main.rs\n" +
		"A  new_feature.rs\n" +
		"?? scratch.txt\n"

	require.Equal(t, `# Files
/scratch.txt
`, Render(status))
}

// TestRenderSimilarPrefixNotCovered checks that a file sharing a name
// prefix with a directory is not mistaken for its content.
func TestRenderSimilarPrefixNotCovered(t *testing.T) {
	t.Parallel()

	status := "!! target/\n" +
		"?? target2.txt\n"

	// "target2.txt" does not start with "target/", so it survives.
	require.Equal(t, `# Directories
/target/
# Files
/target2.txt
`, Render(status))
}

// TestRenderEmptyStatus checks that a clean repository yields no
// output at all.
func TestRenderEmptyStatus(t *testing.T) {
	t.Parallel()

	require.Empty(t, Render(""))
}

// TestRenderOnlyFiles checks that the directory header is omitted when
// there is nothing to put under it.
func TestRenderOnlyFiles(t *testing.T) {
	t.Parallel()

	require.Equal(t, `# Files
/only.txt
`, Render("?? only.txt"))
}
