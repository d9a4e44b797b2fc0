package emit

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/apidex-dev/apidex/internal/scan"
	"github.com/apidex-dev/apidex/internal/strset"
	"github.com/apidex-dev/apidex/internal/symbol"
)

func TestMarshalIndexEmpty(t *testing.T) {
	data, err := MarshalIndex(symbol.NewTable())
	if err != nil {
		t.Fatalf("MarshalIndex failed: %v", err)
	}
	if string(data) != "[\n]\n" {
		t.Fatalf("empty index = %q", data)
	}
}

func TestMarshalIndexLayout(t *testing.T) {
	table := symbol.NewTable()
	table.Append(symbol.Symbol{
		Kind: symbol.KindStruct, Vis: symbol.VisPublic, Name: "A",
		File: "include/a.h", LineStart: 1, LineEnd: 3, Snippet: "struct A {\n  int x;\n};",
	})
	table.Append(symbol.Symbol{
		Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPrivate, Name: "b",
		File: "src/b.c", LineStart: 5, LineEnd: 5, Snippet: "void b(void);",
	})

	data, err := MarshalIndex(table)
	if err != nil {
		t.Fatalf("MarshalIndex failed: %v", err)
	}
	out := string(data)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 || lines[0] != "[" || lines[len(lines)-1] != "]" {
		t.Fatalf("unexpected layout:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "  {") || !strings.HasSuffix(lines[1], ",") {
		t.Fatalf("record lines must be indented and comma-separated: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"kind":"struct"`) || !strings.Contains(lines[2], `"vis":"PRIVATE"`) {
		t.Fatalf("wire fields missing:\n%s", out)
	}
	if strings.Contains(out, `"sig"`) || strings.Contains(out, `"Signature"`) {
		t.Fatalf("signature must not be serialized:\n%s", out)
	}
}

func TestMarshalIndexNoHTMLEscaping(t *testing.T) {
	table := symbol.NewTable()
	table.Append(symbol.Symbol{
		Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "cmp",
		File: "src/cmp.c", LineStart: 1, LineEnd: 1,
		Snippet: "int cmp(int a, int b); /* a < b && b > a */",
	})
	data, err := MarshalIndex(table)
	if err != nil {
		t.Fatalf("MarshalIndex failed: %v", err)
	}
	if strings.Contains(string(data), `<`) || strings.Contains(string(data), `&`) {
		t.Fatalf("snippet must not be HTML-escaped:\n%s", data)
	}
	if !strings.Contains(string(data), "a < b && b > a") {
		t.Fatalf("snippet mangled:\n%s", data)
	}
}

func TestIndexRoundTripThroughScan(t *testing.T) {
	src := "typedef struct {\n" +
		"  int x;\n" +
		"  int y;\n" +
		"} Point;\n" +
		"\n" +
		"void move(Point *p, int dx, int dy);\n"

	table := symbol.NewTable()
	for _, s := range scan.ScanSource("include/geo.h", src) {
		table.Append(s)
	}

	path := filepath.Join(t.TempDir(), "index.json")
	if err := WriteIndex(path, table); err != nil {
		t.Fatalf("WriteIndex failed: %v", err)
	}
	got, err := ReadIndex(path)
	if err != nil {
		t.Fatalf("ReadIndex failed: %v", err)
	}

	want := table.Symbols()
	if len(got) != len(want) {
		t.Fatalf("round-trip count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.Kind != w.Kind || g.Vis != w.Vis || g.Name != w.Name ||
			g.File != w.File || g.LineStart != w.LineStart || g.LineEnd != w.LineEnd ||
			g.Snippet != w.Snippet {
			t.Fatalf("record %d mismatch:\n got %+v\nwant %+v", i, g, w)
		}
	}
}

func TestMarshalAPIDef(t *testing.T) {
	table := symbol.NewTable()
	table.Append(symbol.Symbol{
		Kind: symbol.KindTypedefStruct, Vis: symbol.VisPublic, Name: "Vec2",
		Snippet: "typedef struct {\n  float x;  \n  float y;\n} Vec2;",
	})
	table.Append(symbol.Symbol{
		Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "fw_add",
		Snippet:   "Vec2 fw_add(Vec2 a, Vec2 b);",
		Signature: "Vec2 fw_add(Vec2 a, Vec2 b)",
	})
	table.Append(symbol.Symbol{
		Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPrivate, Name: "internal_step",
		Snippet:   "void internal_step(void);",
		Signature: "void internal_step(void)",
	})
	table.Append(symbol.Symbol{
		Kind: symbol.KindFunctionDefinition, Vis: symbol.VisPublic, Name: "fw_len",
		Snippet:   "float fw_len(Vec2 v) {\n  return 0;\n}",
		Signature: "float fw_len(Vec2 v)",
	})

	out := string(MarshalAPIDef(table, ""))

	if !strings.HasPrefix(out, "/* AUTO-GENERATED: do not edit by hand */\n/* Generated by apidex */\n\n/* TYPES */\n") {
		t.Fatalf("bad header:\n%s", out)
	}
	wantBlock := "API_TYPE(PUBLIC, Vec2,\n  float x;\n  float y;\n)\n\n"
	if !strings.Contains(out, wantBlock) {
		t.Fatalf("missing type block %q in:\n%s", wantBlock, out)
	}
	if !strings.Contains(out, "API_FN(PUBLIC, Vec2, fw_add, (Vec2 a, Vec2 b))\n") {
		t.Fatalf("missing public fn line:\n%s", out)
	}
	if !strings.Contains(out, "API_FN(PRIVATE, void, internal_step, (void))\n") {
		t.Fatalf("private prototypes still belong in the def file:\n%s", out)
	}
	if strings.Contains(out, "fw_len") {
		t.Fatalf("definitions must not emit API_FN lines:\n%s", out)
	}
}

func TestMarshalAPIDefPrefixFilter(t *testing.T) {
	table := symbol.NewTable()
	table.Append(symbol.Symbol{
		Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "fw_tick",
		Snippet: "void fw_tick(void);", Signature: "void fw_tick(void)",
	})
	table.Append(symbol.Symbol{
		Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "helper",
		Snippet: "void helper(void);", Signature: "void helper(void)",
	})

	out := string(MarshalAPIDef(table, "fw_"))
	if !strings.Contains(out, "fw_tick") {
		t.Fatalf("prefixed prototype dropped:\n%s", out)
	}
	if strings.Contains(out, "helper") {
		t.Fatalf("prefix filter must drop non-matching prototypes:\n%s", out)
	}
}

func TestMarshalAPIDefKeepsDuplicates(t *testing.T) {
	table := symbol.NewTable()
	for i := 0; i < 2; i++ {
		table.Append(symbol.Symbol{
			Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "fw_init",
			Snippet: "void fw_init(void);", Signature: "void fw_init(void)",
		})
	}
	out := string(MarshalAPIDef(table, ""))
	if strings.Count(out, "API_FN(PUBLIC, void, fw_init, (void))") != 2 {
		t.Fatalf("duplicate records must emit duplicate lines:\n%s", out)
	}
}

func TestMarshalImportHeader(t *testing.T) {
	table := symbol.NewTable()
	table.Append(symbol.Symbol{Kind: symbol.KindTypedefStruct, Vis: symbol.VisPublic, Name: "Vector2"})
	table.Append(symbol.Symbol{Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "mouse_pos"})
	table.Append(symbol.Symbol{Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "fw_add"})
	table.Append(symbol.Symbol{Kind: symbol.KindStruct, Vis: symbol.VisPrivate, Name: "FwState"})

	selected := strset.New(16)
	for _, n := range []string{"Vector2", "mouse_pos", "fw_add", "FwState"} {
		selected.Add(n)
	}

	out := string(MarshalImportHeader(table, selected, false, "framework/api.h"))
	want := "#pragma once\n" +
		"#define API_SELECTIVE 1\n" +
		"#define API_VIS_PRIVATE_TOO 0\n" +
		"\n" +
		"#define IMPORT_Vector2 1\n" +
		"#define IMPORT_mouse_pos 1\n" +
		"#define IMPORT_fw_add 1\n" +
		"\n" +
		"#include \"framework/api.h\"\n"
	if out != want {
		t.Fatalf("header mismatch:\n got %q\nwant %q", out, want)
	}
}

func TestMarshalImportHeaderPrivateMode(t *testing.T) {
	table := symbol.NewTable()
	table.Append(symbol.Symbol{Kind: symbol.KindStruct, Vis: symbol.VisPrivate, Name: "FwState"})

	selected := strset.New(16)
	selected.Add("FwState")

	out := string(MarshalImportHeader(table, selected, true, "api.h"))
	if !strings.Contains(out, "#define API_VIS_PRIVATE_TOO 1\n") {
		t.Fatalf("private mode flag missing:\n%s", out)
	}
	if !strings.Contains(out, "#define IMPORT_FwState 1\n") {
		t.Fatalf("private symbol must emit in private mode:\n%s", out)
	}
}

func TestMarshalImportHeaderDedupesByName(t *testing.T) {
	table := symbol.NewTable()
	table.Append(symbol.Symbol{Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "fw_add"})
	table.Append(symbol.Symbol{Kind: symbol.KindFunctionDefinition, Vis: symbol.VisPublic, Name: "fw_add"})

	selected := strset.New(16)
	selected.Add("fw_add")

	out := string(MarshalImportHeader(table, selected, false, "api.h"))
	if strings.Count(out, "#define IMPORT_fw_add 1\n") != 1 {
		t.Fatalf("name must emit exactly once:\n%s", out)
	}
}

func TestMarshalImportHeaderLaterPublicRecordEmits(t *testing.T) {
	// A private record seen first must not swallow the name when a public
	// record with the same name follows.
	table := symbol.NewTable()
	table.Append(symbol.Symbol{Kind: symbol.KindFunctionDefinition, Vis: symbol.VisPrivate, Name: "fw_draw"})
	table.Append(symbol.Symbol{Kind: symbol.KindFunctionPrototype, Vis: symbol.VisPublic, Name: "fw_draw"})

	selected := strset.New(16)
	selected.Add("fw_draw")

	out := string(MarshalImportHeader(table, selected, false, "api.h"))
	if !strings.Contains(out, "#define IMPORT_fw_draw 1\n") {
		t.Fatalf("public record must still emit:\n%s", out)
	}
}
