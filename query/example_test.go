// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package query_test

import (
	"fmt"
	"log"

	"github.com/creachadair/jvalue/ast"
	"github.com/creachadair/jvalue/query"
)

func Example_small() {
	root := ast.MustParse(`[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]`)
	v, err := query.Eval(root, query.Path(1, "c", "d"))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(v.JSON())
	// Output:
	// true
}

func Example_medium() {
	root := ast.MustParse(`
{
  "plaintiff": "Inigo Montoya",
  "complaint": {
     "defendant": "you",
     "action": "killed",
     "target": "Individual 1"
  },
  "requestedRelief": ["die", "pay punitive damages", "pay attorney fees"],
  "relatedPersons": {
    "Individual 1": {"id": "father", "rel": "plaintiff"}
  }
}`)

	v, err := query.Eval(root, query.Object{
		"name": query.Path("plaintiff"),
		"act": query.Array{
			query.Path("complaint", "defendant"),
			query.Path("complaint", "action"),
			query.String("my"),
			query.Path("relatedPersons", "Individual 1", "id"),
		},
		"req": query.Path("requestedRelief", 0),
	})
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	obj := v.(*ast.Object)
	name, _ := obj.Get("name")
	act, _ := obj.Get("act")
	req, _ := obj.Get("req")
	fmt.Printf("Hello, my name is: %s\n", name)
	fmt.Println(act.JSON())
	fmt.Printf("Prepare to %s", req)
	// Output:
	// Hello, my name is: Inigo Montoya
	// ["you","killed","my","father"]
	// Prepare to die
}

func ExampleJSONPath() {
	root := ast.MustParse(`{"store":{"book":[
  {"title":"Sayings of the Century","price":8.95},
  {"title":"Sword of Honour","price":12.99},
  {"title":"Moby Dick","price":8.99}
]}}`)
	q, err := query.JSONPath("$..book[-2:].title")
	if err != nil {
		log.Fatalf("JSONPath: %v", err)
	}
	v, err := query.Eval(root, q)
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(v.JSON())
	// Output:
	// ["Sword of Honour","Moby Dick"]
}
