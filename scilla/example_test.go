package scilla

import (
	"encoding/json"
	"fmt"
)

func ExampleMapOf() {
	codec := MapOf(String, ListOf(Uint32))

	value := codec.Encode(map[string][]uint32{"primes": {2, 3}})

	fmt.Println(codec.TypeName())

	data, err := json.Marshal(Named("numbers", codec, map[string][]uint32{}))
	if err != nil {
		panic("failed to marshal: " + err.Error())
	}

	fmt.Println(string(data))

	res, err := codec.Decode(value)
	if err != nil {
		panic("failed to decode: " + err.Error())
	}

	fmt.Println(res["primes"])

	// Output: Map String (List (Uint32))
	// {"vname":"numbers","type":"Map String (List (Uint32))","value":{}}
	// [2 3]
}
