//nolint:godot
package datefmt_test

import (
	"fmt"
	"log"

	"github.com/theory/datefmt"
	"github.com/theory/datefmt/locale"
)

// Native patterns use PHP date tokens and carry the "php:" prefix in their
// string form. Dates without times resolve to midnight in the output time
// zone.
func Example_native() {
	layout := datefmt.MustCompile("php:Y-m-d")
	for _, input := range []string{"2013-09-13", "2013-09-31", "2013-09-13foo"} {
		res := layout.Parse(input)
		fmt.Printf("%-14v %v %v\n", input, res.Valid(), res.Unix())
	}
	// Output:
	// 2013-09-13     true 1379030400
	// 2013-09-31     false 0
	// 2013-09-13foo  false 0
}

// ICU patterns read wall clock times in the engine's time zone unless the
// input carries an offset.
func Example_iCU() {
	engine, err := datefmt.New(datefmt.Config{TimeZone: "Europe/Berlin"})
	if err != nil {
		log.Fatal(err)
	}

	layout := engine.MustCompile(datefmt.ICU("yyyy-MM-dd HH:mm:ss"))
	res := layout.Parse("2013-09-13 16:23:15")
	fmt.Println(res.Unix())
	fmt.Println(res)
	fmt.Println(layout.FormatUnix(1379082195))
	// Output:
	// 1379082195
	// 2013-09-13T14:23:15Z
	// 2013-09-13 16:23:15
}

// Skeletons select the locale's predefined patterns, so the same input can
// be valid in one locale and invalid in another.
func Example_skeleton() {
	for _, id := range []string{"en-US", "en-GB", "de-DE"} {
		engine, err := datefmt.New(datefmt.Config{Locale: id})
		if err != nil {
			log.Fatal(err)
		}
		layout := engine.MustCompile(datefmt.Skeleton{Verbosity: locale.Short})
		fmt.Printf(
			"%v %-8v 5/31/2017: %-5v 31/5/2017: %v\n",
			id, layout, layout.Valid("5/31/2017"), layout.Valid("31/5/2017"),
		)
	}
	// Output:
	// en-US M/d/yy   5/31/2017: true  31/5/2017: false
	// en-GB dd/MM/y  5/31/2017: false 31/5/2017: true
	// de-DE dd.MM.yy 5/31/2017: false 31/5/2017: false
}

// Layouts render names in the engine's locale.
func ExampleLayout_Format() {
	for _, id := range []string{"de-DE", "ru-RU"} {
		engine, err := datefmt.New(datefmt.Config{Locale: id})
		if err != nil {
			log.Fatal(err)
		}
		layout := engine.MustCompile(datefmt.ICU("dd MMMM yyyy"))
		fmt.Println(layout.FormatUnix(1399852800))
	}
	// Output:
	// 12 Mai 2014
	// 12 мая 2014
}

func ExampleParseFormat() {
	for _, s := range []string{"php:d.m.Y", "dd.MM.yyyy", "medium", "datetime:full"} {
		f := datefmt.ParseFormat(s)
		fmt.Printf("%T %v\n", f, f)
	}
	// Output:
	// datefmt.Native php:d.m.Y
	// datefmt.ICU dd.MM.yyyy
	// datefmt.Skeleton medium
	// datefmt.Skeleton datetime:full
}
