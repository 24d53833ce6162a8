// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package pathgen produces file paths for building sample trees.
package pathgen

import (
	"fmt"
	"math/rand/v2"
	"path"
	"strings"
)

// Samples is a fixed corpus of unique file paths spread over several drives.
var Samples = [...]string{
	"C:/Program Files/App/data.bin",
	"C:/Windows/System32/drivers/file.sys",
	"C:/Users/Admin/Documents/report.pdf",
	"C:/ProgramData/Application/logs/system.log",
	"D:/Projects/Website/index.html",
	"D:/Downloads/installer.exe",
	"D:/Media/Music/album/track01.mp3",
	"D:/Backup/2023/January/backup.zip",
	"E:/Games/RPG/saves/character.sav",
	"E:/Virtual Machines/Linux/disk.img",
	"E:/Photos/Vacation/img0001.jpg",
	"E:/Videos/Family/birthday.mp4",
	"F:/Work/Presentations/quarterly.pptx",
	"F:/Documents/Financial/taxes2023.xlsx",
	"F:/Source/Repository/project/main.cpp",
	"F:/Archives/Old Projects/legacy.tar",
	"G:/Temp/extract/contents.txt",
	"G:/Books/Technical/programming.epub",
	"G:/Research/Papers/2023/findings.docx",
	"G:/Database/Backups/db_dump.sql",
	"H:/External/Shared/company_logo.png",
	"H:/Transfer/Incoming/received_file.dat",
	"H:/Raw Data/Sensors/readings.csv",
	"H:/Scripts/Automation/daily_task.bat",
	"I:/Recovery/System Image/os_backup.img",
	"I:/Utilities/Portable Apps/text_editor.exe",
}

// Generator picks paths pseudo-randomly. It is deterministic for a given
// seed and is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded with seed.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Sample returns a path drawn uniformly from Samples.
func (g *Generator) Sample() string {
	return Samples[g.rng.IntN(len(Samples))]
}

// Draw returns n paths drawn uniformly, with replacement, from Samples.
// Duplicates are expected once n approaches len(Samples).
func (g *Generator) Draw(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.Sample()
	}
	return out
}

// Synthetic returns n distinct paths. Each one takes the directory and
// extension of a random sample and a name made unique by its position, so
// trees of any size can be built from the corpus.
func (g *Generator) Synthetic(n int) []string {
	out := make([]string, n)
	for i := range out {
		s := g.Sample()
		dir, file := path.Split(s)
		ext := path.Ext(file)
		base := strings.TrimSuffix(file, ext)
		out[i] = fmt.Sprintf("%s%s_%06d%s", dir, base, i, ext)
	}
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
