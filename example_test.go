package stegano_test

import (
	"context"
	"fmt"
	"image"
	"image/color"

	stegano "github.com/yyyoichi/stegano_zero"
)

func ExampleEmbedImage() {
	// Create a simple gradient image (100x100 pixels)
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			r := uint8(x * 255 / 100)
			g := uint8(y * 255 / 100)
			b := uint8((x + y) * 255 / 200)
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	ctx := context.Background()
	payload := []byte("hidden in plain sight")

	marked, err := stegano.EmbedImage(ctx, img, payload)
	if err != nil {
		fmt.Printf("embed: %v\n", err)
		return
	}
	recovered, err := stegano.ExtractImage(ctx, marked)
	if err != nil {
		fmt.Printf("extract: %v\n", err)
		return
	}
	fmt.Println(string(recovered))
	// Output:
	// hidden in plain sight
}

func ExampleEmbedText() {
	ctx := context.Background()
	text := "the five boxing wizards jump quickly over the lazy dog " +
		"while pack my box with five dozen liquor jugs plays on and " +
		"a quick movement of the enemy will jeopardize six gunboats " +
		"as the job requires extra pluck and zeal from every young " +
		"wage earner in the county"

	marked, err := stegano.EmbedText(ctx, text, []byte("?"))
	if err != nil {
		fmt.Printf("embed: %v\n", err)
		return
	}
	recovered, err := stegano.ExtractText(ctx, marked)
	if err != nil {
		fmt.Printf("extract: %v\n", err)
		return
	}
	fmt.Println(string(recovered))
	// Output:
	// ?
}

func ExampleCodec_NewImageCarrier() {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 31 % 251)
	}

	c, err := stegano.New(stegano.WithLSBDepth(2))
	if err != nil {
		fmt.Printf("new: %v\n", err)
		return
	}
	carrier := c.NewImageCarrier(img)
	fmt.Println("capacity:", carrier.CapacityBits(), "bits")

	ctx := context.Background()
	marked, err := carrier.Embed(ctx, []byte("carrier surface"))
	if err != nil {
		fmt.Printf("embed: %v\n", err)
		return
	}
	recovered, err := marked.Extract(ctx)
	if err != nil {
		fmt.Printf("extract: %v\n", err)
		return
	}
	fmt.Println(string(recovered))
	// Output:
	// capacity: 6144 bits
	// carrier surface
}
