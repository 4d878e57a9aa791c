// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command dcminfo parses a single DICOM Part 10 file and prints its
// elements and image summary.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"github.com/nishi-takao/opencv-dicom-reader/dicom"
	"github.com/sirupsen/logrus"
)

func main() {
	var path string
	var decodeCharset bool
	var verbose bool

	flag.StringVar(&path, "path", "", "Path to a single DICOM (.dcm) file.")
	flag.BoolVar(&decodeCharset, "decode-charset", false, "Transcode string values per (0008,0005) SpecificCharacterSet.")
	flag.BoolVar(&verbose, "verbose", false, "Print every decoded element, not just the image summary.")
	flag.Parse()

	if path == "" {
		flag.Usage()
		os.Exit(1)
	}

	log := logrus.New()

	if err := run(path, decodeCharset, verbose, log); err != nil {
		log.Fatal(pfx.Err(err))
	}
}

func run(path string, decodeCharset, verbose bool, log *logrus.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	opts := []dicom.Option{dicom.WithLogger(log)}
	if decodeCharset {
		opts = append(opts, dicom.WithCharacterSetDecoding(true))
	}

	parser := dicom.NewFileParser(opts...)
	if err := parser.Parse(f); err != nil {
		return pfx.Err(err)
	}

	if verbose {
		printElements(parser)
	}
	printSummary(parser)

	if err := printPixelStats(parser); err != nil {
		log.WithError(err).Warn("dcminfo: could not build pixel matrix")
	}

	return nil
}

func printElements(p *dicom.FileParser) {
	for _, tag := range p.Elements().Tags() {
		elem, _ := p.Elements().Get(tag)
		fmt.Printf("%s VR=%s kind=%v vector=%v\n", elem.Tag, elem.VR, elem.Kind(), elem.IsVector())
	}
}

func printSummary(p *dicom.FileParser) {
	s := p.Summary()
	if s == nil {
		fmt.Println("no image summary available")
		return
	}
	fmt.Printf("rows=%d cols=%d channels=%d bitsAllocated=%d signed=%v\n",
		s.Rows, s.Cols, s.Channels, s.BitsAllocated, s.IsSigned)
	fmt.Printf("pixelSpacing=(%v,%v) imagePosition=(%v,%v,%v)\n",
		s.PixelSpacingRow, s.PixelSpacingCol, s.ImagePosX, s.ImagePosY, s.ImagePosZ)
}

func printPixelStats(p *dicom.FileParser) error {
	matrix, err := p.Image()
	if err != nil {
		return err
	}

	min, max, err := pixelRange(matrix)
	if err != nil {
		return err
	}
	fmt.Printf("pixel dtype=%v shape=%dx%d min=%v max=%v\n", matrix.Dtype, matrix.Rows, matrix.Cols, min, max)
	return nil
}

func pixelRange(m *dicom.PixelMatrix) (float64, float64, error) {
	first, err := m.At(0, 0)
	if err != nil {
		return 0, 0, err
	}
	min, max := first, first
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			v, err := m.At(row, col)
			if err != nil {
				return 0, 0, err
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max, nil
}
