package tokenizer_test

import (
	"fmt"
	"log"

	"github.com/born-ml/chartok/tokenizer"
)

func ExampleNew() {
	tok, err := tokenizer.New(tokenizer.ExampleConfig())
	if err != nil {
		log.Fatal(err)
	}

	ids := tok.Tokenize("ab", tokenizer.PaddingMaxLength, 6)
	fmt.Println(ids)
	fmt.Println(tok.Decode(ids, true))
	fmt.Println(tok.Decode(ids, false))

	// Output:
	// [2 4 5 3 0 0]
	// ab
	// <bos>ab
}

func ExampleCharTokenizer_Tokenize_truncation() {
	tok, err := tokenizer.New(tokenizer.ExampleConfig())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(tok.Tokenize("ab", tokenizer.PaddingMaxLength, 3))

	// Output:
	// [2 4 5]
}

func ExampleEncodeLabel() {
	specials := tokenizer.NewConfig(nil).SpecialTokens()

	fmt.Println(tokenizer.EncodeLabel("a", specials))
	fmt.Println(tokenizer.EncodeLabel("<pad>", specials))

	// Output:
	// a (0x0061)
	// <pad>
}
