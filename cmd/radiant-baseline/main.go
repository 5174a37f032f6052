// Package main runs the syntax highlighting performance baseline: a
// synthetic load/highlight sweep followed by a live service integration
// pass over representative filenames.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dshills/radiant/internal/syntax"
	"github.com/dshills/radiant/internal/syntax/perf"
)

func main() {
	decorate := term.IsTerminal(int(os.Stdout.Fd()))
	banner("Radiant Syntax Highlighting Performance Baseline", decorate)

	testFiles := []string{
		"test_small.rs",
		"test_medium.js",
		"test_large.py",
		"test_json.json",
		"test_markdown.md",
		"test_typescript.ts",
		"test_css.css",
		"test_html.html",
		"test_yaml.yml",
		"test_toml.toml",
	}

	fmt.Printf("Running baseline tests with %d test files...\n\n", len(testFiles))

	start := time.Now()
	measurement := perf.RunBaselineTest(testFiles)
	fmt.Printf("Baseline test completed in %.2fs\n\n", time.Since(start).Seconds())

	fmt.Print(measurement.GenerateReport())

	if ok, issues := measurement.MeetsRequirements(); ok {
		fmt.Println("All performance requirements met.")
	} else {
		fmt.Println("Performance issues detected:")
		for _, issue := range issues {
			fmt.Printf("  - %s\n", issue)
		}
	}

	banner("Testing Syntax Highlighting Service Integration", decorate)
	testServiceIntegration()

	banner("Performance Baseline Complete", decorate)
}

func testServiceIntegration() {
	service := syntax.NewService()

	testCases := []struct {
		filename string
		sample   string
	}{
		{"main.rs", `fn main() { println!("Hello, world!"); }`},
		{"app.js", `console.log('Hello, world!');`},
		{"script.py", `print('Hello, world!')`},
		{"config.json", `{ "message": "Hello, world!" }`},
		{"README.md", "# Hello, world!"},
		{"style.css", "body { margin: 0; }"},
		{"index.html", "<html></html>"},
		{"data.yaml", "message: hello"},
		{"config.toml", `message = "hello"`},
		{"app.ts", `const msg: string = 'hello';`},
		{"unknown.xyz", "Hello, world!"},
	}

	fmt.Println("Testing language detection and state creation:")
	for _, tc := range testCases {
		state := service.CreateState(tc.filename)
		fmt.Printf("  %s -> %s (enabled: %v)\n", tc.filename, state.Language(), state.Enabled())

		start := time.Now()
		spans := service.HighlightLine(state, tc.sample, 0)
		fmt.Printf("    Highlighted %d chars -> %d tokens in %dµs\n",
			len(tc.sample), len(spans), time.Since(start).Microseconds())
	}

	fmt.Println("\nTesting line length performance:")
	rustState := service.CreateState("test.rs")
	testLines := []string{
		"fn main() {",
		"pub fn complex_function(param1: &str, param2: Option<i32>, param3: Vec<String>) -> Result<(), Error> {",
		"let very_long_variable_name_that_demonstrates_long_line_handling = some_complex_expression_with_many_method_calls().and_then(|result| result.map(|x| x.to_string())).unwrap_or_else(|| default_value.clone());",
		strings.Repeat("x", 1000),
	}
	for i, line := range testLines {
		start := time.Now()
		spans := service.HighlightLine(rustState, line, i)
		fmt.Printf("  Line %d chars: %d tokens in %dµs\n",
			len(line), len(spans), time.Since(start).Microseconds())
	}

	metrics := service.GlobalMetrics()
	fmt.Printf("\nGlobal: %d lines, %d tokens, hit ratio %.1f%%\n",
		metrics.LinesHighlighted, metrics.TokensGenerated, metrics.CacheHitRatio()*100)

	fmt.Println("\nService integration test completed.")
}

func banner(title string, decorate bool) {
	if decorate {
		fmt.Printf("\n=== %s ===\n\n", title)
		return
	}
	fmt.Printf("\n%s\n\n", title)
}
