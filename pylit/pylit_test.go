package pylit_test

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/mxsuite/pylit"
)

func readFixture(t *testing.T) []byte {
	data, err := ioutil.ReadFile("testdata/irbuilder_suite.py")
	require.NoError(t, err)
	return data
}

func TestParseIRBuilderSuite(t *testing.T) {
	d, err := pylit.Parse(readFixture(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"mxversion", "name", "versionConflictResolution", "imports", "javac.lint.overrides", "projects"}, d.Keys())

	name, _ := d.Get("name")
	assert.Equal(t, "java-llvm-ir-builder", name)

	imports, _ := d.Get("imports")
	suites, _ := imports.(*pylit.Dict).Get("suites")
	require.Len(t, suites, 1)
	sulong := suites.([]interface{})[0].(*pylit.Dict)
	version, _ := sulong.Get("version")
	assert.Equal(t, "be6e1e731747b8fe36392435eaf7b3f340261c94", version)

	projects, _ := d.Get("projects")
	irwriter, ok := projects.(*pylit.Dict).Get("at.pointhi.irbuilder.irwriter")
	require.True(t, ok)
	deps, _ := irwriter.(*pylit.Dict).Get("dependencies")
	assert.Equal(t, []interface{}{"sulong:SULONG"}, deps)
}

func TestFormatRoundTrip(t *testing.T) {
	d, err := pylit.Parse(readFixture(t))
	require.NoError(t, err)

	out, err := pylit.Format(pylit.SuiteVariable, d)
	require.NoError(t, err)

	again, err := pylit.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, d.Map(), again.Map())
	assert.Equal(t, d.Keys(), again.Keys())

	// Formatting is idempotent.
	out2, err := pylit.Format(pylit.SuiteVariable, again)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(out2))
}

func TestFormatLayout(t *testing.T) {
	d := pylit.NewDict()
	d.Set("name", "demo")
	d.Set("sourceDirs", []interface{}{"src"})
	d.Set("empty", []interface{}{})
	d.Set("nested", pylit.NewDict())
	d.Set("flag", true)
	d.Set("none", nil)
	d.Set("count", int64(3))
	d.Set("ratio", 2.0)

	out, err := pylit.Format("suite", d)
	require.NoError(t, err)
	assert.Equal(t, `suite = {
    "name" : "demo",
    "sourceDirs" : ["src"],
    "empty" : [],
    "nested" : {},
    "flag" : True,
    "none" : None,
    "count" : 3,
    "ratio" : 2.0,
}
`, string(out))
}

func TestFormatBreaksLongLists(t *testing.T) {
	d := pylit.NewDict()
	d.Set("dependencies", []interface{}{
		"sulong:SULONG",
		"truffle:TRUFFLE_API",
		"truffle:TRUFFLE_NFI",
		"mx:JUNIT",
		"at.pointhi.irbuilder.irbuilder",
	})
	out, err := pylit.Format("suite", d)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\"dependencies\" : [\n        \"sulong:SULONG\",\n")
}

func TestParseValues(t *testing.T) {
	cases := []struct {
		src  string
		want interface{}
	}{
		{`"double"`, "double"},
		{`'single'`, "single"},
		{`"con" 'cat'`, "concat"},
		{`"""triple "quoted" text"""`, `triple "quoted" text`},
		{`r"C:\path"`, `C:\path`},
		{`"tab\tnew\nline"`, "tab\tnew\nline"},
		{`"\x41\u00e9"`, "Aé"},
		{`42`, int64(42)},
		{`-7`, int64(-7)},
		{`1.5`, 1.5},
		{`1_000`, int64(1000)},
		{`True`, true},
		{`False`, false},
		{`None`, nil},
		{`[1, 2,]`, []interface{}{int64(1), int64(2)}},
		{`("a", "b")`, []interface{}{"a", "b"}},
		{`("a",)`, []interface{}{"a"}},
		{`("a")`, "a"},
		{`()`, []interface{}{}},
		{"[ # comment\n 'x' ]", []interface{}{"x"}},
	}
	for _, c := range cases {
		got, err := pylit.ParseValue([]byte(c.src))
		if assert.NoError(t, err, c.src) {
			assert.Equal(t, c.want, got, c.src)
		}
	}
}

func TestParseSkipsOtherStatements(t *testing.T) {
	src := `
import os
# The manifest:
helper = {"suite": 1}
suite = {
    "name" : "demo",
}
`
	d, err := pylit.Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, d.Keys())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		line int
	}{
		{`other = {}`, 1},
		{"suite = {\n  \"a\" : 1,\n  \"a\" : 2,\n}", 3},
		{"suite = {\n  \"a\" : [1, 2\n}", 3},
		{"suite = {\n  a : 1,\n}", 2},
		{"suite = {\n  \"a\" : \"unterminated\n}", 2},
		{"suite = {\n  \"a\" : os.getenv(\"X\"),\n}", 2},
		{"suite = []", 1},
	}
	for _, c := range cases {
		_, err := pylit.Parse([]byte(c.src))
		if assert.Error(t, err, c.src) {
			serr, ok := err.(*pylit.SyntaxError)
			if assert.True(t, ok, c.src) {
				assert.Equal(t, c.line, serr.Line, c.src)
			}
		}
	}
}

func TestDictOperations(t *testing.T) {
	d := pylit.NewDict()
	d.Set("a", 1)
	d.Set("b", 2)
	d.Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, d.Keys())

	v, ok := d.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	d.Delete("a")
	assert.Equal(t, []string{"b"}, d.Keys())
	assert.False(t, d.Has("a"))
	assert.Equal(t, 1, d.Len())

	var nilDict *pylit.Dict
	assert.Equal(t, 0, nilDict.Len())
	assert.Nil(t, nilDict.Map())
}

func TestDictMarshalJSONKeepsOrder(t *testing.T) {
	d := pylit.NewDict()
	d.Set("z", "last")
	d.Set("a", []interface{}{int64(1), nil})
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last","a":[1,null]}`, string(data))
}

func TestDropped(t *testing.T) {
	src := `# Generated by hand.
import os
suite = {
    "name" : "demo", # trailing
    "path" : "a#b",
}
helper = {"suite": 1}
`
	dropped, err := pylit.Dropped([]byte(src), pylit.SuiteVariable)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"line 2: statement",
		"line 7: statement",
		"line 1: comment",
		"line 4: comment",
	}, dropped)

	dropped, err = pylit.Dropped([]byte("suite = {\n    \"name\" : \"demo\",\n}\n"), pylit.SuiteVariable)
	require.NoError(t, err)
	assert.Empty(t, dropped)
}
