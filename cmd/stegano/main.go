// stegano — hide and recover payloads in image, audio, and text files.
//
// Usage:
//
//	stegano embed -carrier <file> -payload <file> -out <file> [options]
//	stegano extract -carrier <file> -out <file> [options]
//	stegano capacity -carrier <file> [options]
//
// Run without arguments for an interactive menu. The carrier medium is
// chosen by file extension: .png/.bmp (image), .wav (audio), anything
// else is treated as plain text.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	stegano "github.com/yyyoichi/stegano_zero"
)

func main() {
	if len(os.Args) < 2 {
		if err := runMenu(); err != nil {
			fatal(err)
		}
		return
	}
	switch os.Args[1] {
	case "embed":
		if err := runEmbed(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "extract":
		if err := runExtract(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "capacity":
		if err := runCapacity(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`stegano — hide and recover payloads in image, audio, and text files

  stegano embed -carrier <file> -payload <file> -out <file> [options]
  stegano extract -carrier <file> -out <file> [options]
  stegano capacity -carrier <file> [options]

Run without arguments for an interactive menu.

Options:
  -depth n       image LSB bits per channel, 1-4 (default 1)
  -seed n        image traversal shuffle seed (default 0, sequential)
  -frame n       audio frame size in samples (default 64)
  -step x        audio quantization step (default 32)

Supported carriers: .png, .bmp images; .wav audio; other files as text.`)
}

type codecFlags struct {
	depth int
	seed  int64
	frame int
	step  float64
}

func (cf *codecFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&cf.depth, "depth", 1, "image LSB bits per channel (1-4)")
	fs.Int64Var(&cf.seed, "seed", 0, "image traversal shuffle seed")
	fs.IntVar(&cf.frame, "frame", 64, "audio frame size in samples")
	fs.Float64Var(&cf.step, "step", 32, "audio quantization step")
}

func (cf *codecFlags) options() []stegano.Option {
	opts := []stegano.Option{
		stegano.WithLSBDepth(cf.depth),
		stegano.WithFrameSize(cf.frame),
		stegano.WithQuantStep(cf.step),
	}
	if cf.seed != 0 {
		opts = append(opts, stegano.WithShuffleSeed(cf.seed))
	}
	return opts
}

func runEmbed(args []string) error {
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	var (
		carrierPath = fs.String("carrier", "", "carrier file")
		payloadPath = fs.String("payload", "", "payload file")
		outPath     = fs.String("out", "", "output file")
		cf          codecFlags
	)
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *carrierPath == "" || *payloadPath == "" || *outPath == "" {
		return fmt.Errorf("embed requires -carrier, -payload and -out")
	}
	payload, err := os.ReadFile(*payloadPath)
	if err != nil {
		return err
	}
	return embedFile(*carrierPath, *outPath, payload, cf.options())
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	var (
		carrierPath = fs.String("carrier", "", "carrier file")
		outPath     = fs.String("out", "", "output file")
		cf          codecFlags
	)
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *carrierPath == "" || *outPath == "" {
		return fmt.Errorf("extract requires -carrier and -out")
	}
	payload, err := extractFile(*carrierPath, cf.options())
	if err != nil {
		return err
	}
	return os.WriteFile(*outPath, payload, 0o644)
}

func runCapacity(args []string) error {
	fs := flag.NewFlagSet("capacity", flag.ExitOnError)
	var (
		carrierPath = fs.String("carrier", "", "carrier file")
		cf          codecFlags
	)
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *carrierPath == "" {
		return fmt.Errorf("capacity requires -carrier")
	}
	bits, err := capacityFile(*carrierPath, cf.options())
	if err != nil {
		return err
	}
	// The 32-bit length header claims part of the space.
	bytes := (bits - stegano.FrameBits(0)) / 8
	if bytes < 0 {
		bytes = 0
	}
	fmt.Printf("capacity: %d bits (%d payload bytes)\n", bits, bytes)
	return nil
}

func embedFile(carrierPath, outPath string, payload []byte, opts []stegano.Option) error {
	ctx := context.Background()
	switch mediumOf(carrierPath) {
	case mediumImage:
		img, err := loadImage(carrierPath)
		if err != nil {
			return err
		}
		marked, err := stegano.EmbedImage(ctx, img, payload, opts...)
		if err != nil {
			return err
		}
		return saveImage(outPath, marked)
	case mediumAudio:
		buf, err := loadWAV(carrierPath)
		if err != nil {
			return err
		}
		opts = append(opts, stegano.WithSampleBitDepth(buf.SourceBitDepth))
		marked, err := stegano.EmbedAudio(ctx, buf.Data, payload, opts...)
		if err != nil {
			return err
		}
		buf.Data = marked
		return saveWAV(outPath, buf)
	default:
		text, err := os.ReadFile(carrierPath)
		if err != nil {
			return err
		}
		marked, err := stegano.EmbedText(ctx, string(text), payload, opts...)
		if err != nil {
			return err
		}
		return os.WriteFile(outPath, []byte(marked), 0o644)
	}
}

func extractFile(carrierPath string, opts []stegano.Option) ([]byte, error) {
	ctx := context.Background()
	switch mediumOf(carrierPath) {
	case mediumImage:
		img, err := loadImage(carrierPath)
		if err != nil {
			return nil, err
		}
		return stegano.ExtractImage(ctx, img, opts...)
	case mediumAudio:
		buf, err := loadWAV(carrierPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, stegano.WithSampleBitDepth(buf.SourceBitDepth))
		return stegano.ExtractAudio(ctx, buf.Data, opts...)
	default:
		text, err := os.ReadFile(carrierPath)
		if err != nil {
			return nil, err
		}
		return stegano.ExtractText(ctx, string(text), opts...)
	}
}

func capacityFile(carrierPath string, opts []stegano.Option) (int, error) {
	c, err := stegano.New(opts...)
	if err != nil {
		return 0, err
	}
	switch mediumOf(carrierPath) {
	case mediumImage:
		img, err := loadImage(carrierPath)
		if err != nil {
			return 0, err
		}
		return c.ImageCapacity(img), nil
	case mediumAudio:
		buf, err := loadWAV(carrierPath)
		if err != nil {
			return 0, err
		}
		return c.AudioCapacity(buf.Data), nil
	default:
		text, err := os.ReadFile(carrierPath)
		if err != nil {
			return 0, err
		}
		return c.TextCapacity(string(text)), nil
	}
}

func runMenu() error {
	in := bufio.NewScanner(os.Stdin)
	prompt := func(label string) (string, error) {
		fmt.Print(label)
		if !in.Scan() {
			return "", fmt.Errorf("input closed")
		}
		return strings.TrimSpace(in.Text()), nil
	}

	fmt.Println("stegano — interactive mode")
	fmt.Println(" 1) embed into image    4) extract from image")
	fmt.Println(" 2) embed into audio    5) extract from audio")
	fmt.Println(" 3) embed into text     6) extract from text")
	choice, err := prompt("choice: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1", "2", "3":
		carrier, err := prompt("carrier path: ")
		if err != nil {
			return err
		}
		payloadPath, err := prompt("payload path: ")
		if err != nil {
			return err
		}
		out, err := prompt("output path: ")
		if err != nil {
			return err
		}
		payload, err := os.ReadFile(payloadPath)
		if err != nil {
			return err
		}
		if err := embedFile(carrier, out, payload, nil); err != nil {
			return err
		}
		fmt.Println("embedded", len(payload), "bytes into", out)
	case "4", "5", "6":
		carrier, err := prompt("carrier path: ")
		if err != nil {
			return err
		}
		out, err := prompt("output path: ")
		if err != nil {
			return err
		}
		payload, err := extractFile(carrier, nil)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, payload, 0o644); err != nil {
			return err
		}
		fmt.Println("extracted", len(payload), "bytes into", out)
	default:
		return fmt.Errorf("unknown choice %q", choice)
	}
	return nil
}
