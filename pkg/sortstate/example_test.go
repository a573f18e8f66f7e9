package sortstate_test

import (
	"fmt"

	"github.com/tablekit/sortstate/pkg/sortstate"
)

func ExampleController() {
	ctrl, err := sortstate.New(sortstate.WithMultiSort(true))
	if err != nil {
		panic(err)
	}

	// Registration typically happens once per sortable column at setup.
	ctrl.RegisterField("name", false, "Name", nil)
	ctrl.RegisterField("price", true, "Price", nil)

	// A click on the price header activates it descending first.
	ctrl.Toggle("price")
	// A click on the name header appends it as the tie-breaker.
	ctrl.Toggle("name")

	for _, key := range ctrl.OrderingKeys() {
		if key.Kind == sortstate.KindField {
			fmt.Println(key.Signed())
		}
	}

	status := ctrl.DisplayStatus("price")
	fmt.Printf("price sorted=%v descending=%v\n", status.Sorted, status.Descending)

	// Output:
	// -price
	// +name
	// price sorted=true descending=true
}

func ExampleParseQuery() {
	state, err := sortstate.ParseQuery("-created_at,name")
	if err != nil {
		panic(err)
	}
	for _, c := range state {
		fmt.Printf("%s %s\n", c.Field, c.Order)
	}
	fmt.Println(state.QueryString())

	// Output:
	// created_at -
	// name +
	// -created_at,name
}
