package prop_test

import (
	"fmt"

	"github.com/MRepoApp/prop-go"
)

func ExampleUnmarshal() {
	type Person struct {
		Name    string  `prop:"name"`
		Retired *string `prop:"retired"`
		Score   int     `prop:"score"`
	}

	input := `# comment
name=Ada
retired=
score=100
`
	var p Person
	if err := prop.UnmarshalString(input, &p); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.Name, p.Retired == nil, p.Score)
	// Output: Ada true 100
}

func ExampleMarshal() {
	out, err := prop.Marshal(map[string]any{"b": "x", "a": 1})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(out))
	// Output:
	// a=1
	// b=x
}

func ExampleEntries() {
	input := []byte("name=Ada\n! comment\nrole: engineer\n")
	for entry := range prop.Entries(input) {
		fmt.Printf("%d %s=%s\n", entry.Lno, entry.Key, entry.Value)
	}
	// Output:
	// 1 name=Ada
	// 3 role=engineer
}
