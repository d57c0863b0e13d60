package skemajs_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skemajs"
	"github.com/reoring/skemajs/def"
	"github.com/reoring/skemajs/dsl"
	"github.com/reoring/skemajs/i18n"
)

func TestConvert_InvalidOptions(t *testing.T) {
	b := dsl.New()
	s := b.String()
	cases := []struct {
		name   string
		opts   skemajs.Options
		option string
	}{
		{"target", skemajs.Options{Target: "jsonSchema2019-09"}, "target"},
		{"ref strategy", skemajs.Options{RefStrategy: "seen"}, "refStrategy"},
		{"definitions key", skemajs.Options{DefinitionsKey: "components"}, "definitionsKey"},
		{"base path", skemajs.Options{BasePath: []string{"components"}}, "basePath"},
		{"empty base path", skemajs.Options{BasePath: []string{}}, "basePath"},
		{"max depth", skemajs.Options{MaxDepth: -1}, "maxDepth"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, _, err := skemajs.ConvertType(s, c.opts)
			require.Nil(t, doc)
			require.ErrorIs(t, err, skemajs.ErrInvalidOption)

			iss, ok := skemajs.AsIssues(err)
			require.True(t, ok)
			require.Len(t, iss, 1)
			require.Equal(t, skemajs.CodeInvalidOption, iss[0].Code)
			require.Equal(t, c.option, iss[0].Path)
			require.True(t, strings.HasPrefix(iss[0].Message, "invalid option: "+c.option+"="), iss[0].Message)
		})
	}
}

func TestConvert_DepthExceeded(t *testing.T) {
	b := dsl.New()
	var typ dsl.Typer = b.String()
	for range 20 {
		typ = b.Object().Field("next", typ)
	}
	_, _, err := skemajs.ConvertType(typ, skemajs.Options{MaxDepth: 8})
	require.ErrorIs(t, err, skemajs.ErrDepthExceeded)

	iss, ok := skemajs.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, skemajs.CodeDepthExceeded, iss[0].Code)
	require.True(t, strings.HasPrefix(iss[0].Path, "#/properties/next"), iss[0].Path)

	_, _, err = skemajs.ConvertType(typ, skemajs.Options{})
	require.NoError(t, err)
}

func TestConvert_InvalidDefinition(t *testing.T) {
	g := def.NewGraph()
	root := g.Add(def.Node{Kind: def.KindObject, Fields: []def.Field{{Name: "a", Type: 99}}})
	_, _, err := skemajs.Convert(g, root, skemajs.Options{})
	require.ErrorIs(t, err, skemajs.ErrInvalidDefinition)
	iss, ok := skemajs.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "#/properties/a", iss[0].Path)
	require.Error(t, iss[0].Cause)

	_, _, err = skemajs.Convert(g, def.NoID, skemajs.Options{})
	require.ErrorIs(t, err, skemajs.ErrInvalidDefinition)
}

func TestConvert_UnrepresentableRoot(t *testing.T) {
	b := dsl.New()
	doc, d, err := skemajs.ConvertType(b.Function(), skemajs.Options{Target: skemajs.TargetOpenAPI3})
	require.NoError(t, err)
	out, err := doc.JSON()
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(out))

	require.True(t, d.HasWarnings())
	require.Equal(t, skemajs.CodeUnrepresentable, d.Issues()[0].Code)
	require.Equal(t, "function has no schema representation and was omitted", d.Warnings()[0])
}

func TestConvert_LocalizedIssues(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	b := dsl.New()
	_, d, err := skemajs.ConvertType(b.Object().Field("f", b.Void()), skemajs.Options{})
	require.NoError(t, err)
	require.Equal(t, "void はスキーマで表現できないため省略しました", d.Warnings()[0])
}

func TestConvert_ConcurrentSharedGraph(t *testing.T) {
	b := dsl.New()
	root := category(b)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	outs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			opts := skemajs.Options{}
			if i%2 == 1 {
				opts.Target = skemajs.TargetOpenAPI3
			}
			doc, _, err := skemajs.ConvertType(root, opts)
			if err != nil {
				errs <- err
				return
			}
			raw, err := doc.JSON()
			if err != nil {
				errs <- err
				return
			}
			if i%2 == 0 {
				outs <- string(raw)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	close(outs)
	for err := range errs {
		t.Fatal(err)
	}
	var first string
	for out := range outs {
		if first == "" {
			first = out
		}
		require.Equal(t, first, out)
	}
}

func TestConvert_LogsThroughLogger(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	b := dsl.New()
	_, _, err := skemajs.ConvertType(b.Object().Field("f", b.Function()), skemajs.Options{Logger: log})
	require.NoError(t, err)

	joined := strings.Join(lines, "\n")
	require.Contains(t, joined, `"msg"="omitting unrepresentable definition"`)
	require.Contains(t, joined, `"path"="#/properties/f"`)
	require.Contains(t, joined, `"msg"="converted definition"`)
	require.Contains(t, joined, `"target"="jsonSchema7"`)
}

func TestIssues_Error(t *testing.T) {
	iss := skemajs.Issues{
		{Code: "a", Path: "#/1"}, {Code: "b", Path: "#/2"},
		{Code: "c", Path: "#/3"}, {Code: "d", Path: "#/4"},
	}
	require.Equal(t, "a at #/1; b at #/2; c at #/3; ... (total 4)", iss.Error())
	require.Equal(t, "", skemajs.Issues{}.Error())

	_, ok := skemajs.AsIssues(errors.New("plain"))
	require.False(t, ok)
	_, ok = skemajs.AsIssues(nil)
	require.False(t, ok)

	got := skemajs.AppendIssues(nil, skemajs.Issue{Code: "x"})
	require.Len(t, got, 1)
}
