package unicodes

import (
	"unicode/utf8"

	"github.com/go-text/typesetting/segmenter"
)

// lineBreaks reports the UAX #14 break opportunities strictly inside text,
// converting the segmenter's rune offsets to byte offsets.
func lineBreaks(text string) []LineBreak {
	if text == "" {
		return nil
	}
	var seg segmenter.Segmenter
	seg.InitWithString(text)

	// byteOf[i] is the byte offset of rune i. Invalid bytes decode to one
	// U+FFFD each, as they do in the segmenter.
	byteOf := make([]int, 0, len(text)+1)
	for i := 0; i < len(text); {
		byteOf = append(byteOf, i)
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	byteOf = append(byteOf, len(text))

	var out []LineBreak
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		end := line.Offset + len(line.Text)
		if end >= len(byteOf)-1 {
			break
		}
		kind := BreakSoft
		if line.IsMandatoryBreak {
			kind = BreakHard
		}
		out = append(out, LineBreak{Pos: byteOf[end], Kind: kind})
	}
	return out
}
