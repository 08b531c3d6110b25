// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/mp3"
)

// ExampleDecoder_Decode decodes a whole MP3 file and brings it to 44.1 kHz.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}

	out, err := audio.Resample(buf, 44100)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d frames, %v\n", out.Frames(), out.Duration())
}
