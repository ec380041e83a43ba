// Package tokenizer provides character-level text tokenization.
//
// Every Unicode character in the vocabulary has its own token ID. Four
// special tokens frame and fill sequences:
//   - pad: fills sequences up to a fixed length
//   - unk: stands in for characters missing from the vocabulary
//   - bos: starts every sequence
//   - eos: ends every sequence and stops decoding
//
// Vocabularies are stored as JSON (or YAML) artifacts. Each character is
// keyed by a label that carries both the character and its codepoint, so
// whitespace and control characters stay visible in diffs:
//
//	{
//		"vocab": {
//			"<pad>": 0,
//			"<unk>": 1,
//			"<bos>": 2,
//			"<eos>": 3,
//			"a (0x0061)": 4,
//			"  (0x0020)": 5
//		},
//		"pad_token": "<pad>",
//		"unk_token": "<unk>",
//		"bos_token": "<bos>",
//		"eos_token": "<eos>"
//	}
//
// Example usage:
//
//	tok, err := tokenizer.LoadFromFile("tokenizer_config_v2.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text into exactly 128 IDs
//	ids := tok.Tokenize("hello", tokenizer.PaddingMaxLength, 128)
//
//	// Decode back, dropping special tokens
//	text := tok.Decode(ids, true)
package tokenizer
