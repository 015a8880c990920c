package regula_test

import (
	"fmt"
	"log"

	"github.com/aretw0/regula"
)

func ExampleMatch() {
	for _, input := range []string{"c", "ababc", "abc", "aba"} {
		ok, err := regula.Match("(ab)*c", input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(input, ok)
	}
	// Output:
	// c true
	// ababc true
	// abc true
	// aba false
}

func ExampleCompile() {
	a, err := regula.Compile("a.")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(a.States(), a.MatchString("a"), a.MatchString("ab"))
	// Output: 4 false true
}

func ExampleMatch_syntaxError() {
	_, err := regula.Match("a{3,1}", "aaa")
	fmt.Println(err != nil)
	// Output: true
}
