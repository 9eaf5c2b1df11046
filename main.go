// Command aviary analyzes a corpus of UAV design records, computing
// entropy-based structural complexity metrics per design and across
// the corpus.
package main

import "github.com/finchworks/aviary/cmd"

func main() {
	cmd.Execute()
}
