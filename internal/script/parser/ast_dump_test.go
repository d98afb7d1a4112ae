package parser

import (
	"strings"
	"testing"

	"github.com/pacer/ethereal/internal/script/testutil"
)

func TestDump_Loop(t *testing.T) {
	root, errs := parseSource(t, `for("i", 0, "10") { print(i, "done") }`)
	testutil.AssertNoErrors(t, errs)

	want := strings.Join([]string{
		`Program:`,
		`└─ Loop:`,
		`   ├─ type: for`,
		`   ├─ args:`,
		`   │  ├─ "i"`,
		`   │  ├─ "0"`,
		`   │  └─ "10"`,
		`   └─ block:`,
		`      └─ Block:`,
		`         └─ Call: print`,
		`            └─ args:`,
		`               ├─ i`,
		`               └─ "done"`,
		``,
	}, "\n")

	if got := DumpString(root); got != want {
		t.Errorf("Unexpected dump:\n%s\nwant:\n%s", got, want)
	}
}

func TestDump_WithoutBodyOrArgs(t *testing.T) {
	root, errs := parseSource(t, `for() foreach_var("k", "v") {}`)
	testutil.AssertNoErrors(t, errs)

	want := strings.Join([]string{
		`Program:`,
		`├─ Loop:`,
		`│  ├─ type: for`,
		`│  ├─ args: <none>`,
		`│  └─ block: <none>`,
		`└─ Loop:`,
		`   ├─ type: foreach_var`,
		`   ├─ args:`,
		`   │  ├─ "k"`,
		`   │  └─ "v"`,
		`   └─ block:`,
		`      └─ Block: <empty>`,
		``,
	}, "\n")

	if got := DumpString(root); got != want {
		t.Errorf("Unexpected dump:\n%s\nwant:\n%s", got, want)
	}
}

func TestDump_LoopControl(t *testing.T) {
	root, errs := parseSource(t, `foreach("a", "b") { continue; break }`)
	testutil.AssertNoErrors(t, errs)

	got := DumpString(root)

	for _, want := range []string{"└─ Block:\n", "├─ continue\n", "└─ break\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected dump to contain %q, got:\n%s", want, got)
		}
	}
}

func TestDump_IsStable(t *testing.T) {
	root, errs := parseSource(t, `
foreach("row", "rows") {
	foreach_var("k", "v", "row") { print(k, v) }
	for() { break }
}`)
	testutil.AssertNoErrors(t, errs)

	first := DumpString(root)
	second := DumpString(root)

	if first != second {
		t.Errorf("Expected identical dumps, got:\n%s\nand:\n%s", first, second)
	}

	var sb strings.Builder
	if err := Dump(&sb, root); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	if sb.String() != first {
		t.Errorf("Dump and DumpString disagree")
	}
}

func TestDump_Nil(t *testing.T) {
	if got := DumpString(nil); got != "<nil>\n" {
		t.Errorf("Expected '<nil>', got %q", got)
	}
}

func TestLoopStatementNode_String(t *testing.T) {
	root, errs := parseSource(t, `foreach("a", 2)`)
	testutil.AssertNoErrors(t, errs)

	got := root.Statements[0].String()

	for _, want := range []string{`"Kind": "KindLoop"`, `"Loop": "foreach"`, `"Args": ["a", "2"]`, `"Block": null`} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in %s", want, got)
		}
	}
}
