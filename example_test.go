package graphattr_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/graphattr"
	"github.com/hupe1980/graphattr/attribute"
	"github.com/hupe1980/graphattr/bin"
	"github.com/hupe1980/graphattr/blobstore"
	"github.com/hupe1980/graphattr/readable"
)

func Example() {
	ctx := context.Background()
	eng := graphattr.New()

	g := eng.Graph()
	a, b, c := g.AddVertex(), g.AddVertex(), g.AddVertex()
	ab, _ := g.AddTransaction(a, b)
	ac, _ := g.AddTransaction(a, c)

	weight, _ := eng.AddAttribute(attribute.ElementTransaction, "weight", "double")
	_ = eng.Set(ctx, weight, ab, 1.5)
	_ = eng.SetString(ctx, weight, ac, "4")

	buckets, err := eng.Histogram(ctx, graphattr.BinSpec{
		Adjacency:  graphattr.VertexTransactions,
		Attribute:  weight,
		Reduction:  bin.Max,
		Projection: bin.Double,
	}, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, bucket := range buckets {
		fmt.Printf("%s: %v\n", bucket.Label, bucket.Elements.ToArray())
	}
	// Output:
	// 1.5: [1]
	// 4: [0 2]
}

func ExampleEngine_Evaluate() {
	eng := graphattr.New()

	r, err := eng.Evaluate("quotient", readable.Constant(int64(7)), readable.Constant(int32(2)))
	if err != nil {
		fmt.Println(err)
		return
	}
	v, _ := readable.ReadAs[int64](r)
	fmt.Println(r.Kind(), v)
	// Output: long 3
}

func ExampleOpen() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	eng := graphattr.New()
	g := eng.Graph()
	v := g.AddVertex()
	born, _ := eng.AddAttribute(attribute.ElementVertex, "born", "date")
	_ = eng.SetString(ctx, born, v, "1990-02-28")

	if _, err := eng.Save(ctx, store, "people"); err != nil {
		fmt.Println(err)
		return
	}

	restored, err := graphattr.Open(ctx, store, "people")
	if err != nil {
		fmt.Println(err)
		return
	}
	attr, _ := restored.Attribute(attribute.ElementVertex, "born")
	fmt.Println(attr.Description.GetString(v))
	// Output: 1990-02-28
}
