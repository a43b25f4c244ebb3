// Slushy reads nested-list packet documents, orders them and solves the
// distress-signal puzzle built on them.
//
// Input files hold one document per line, for example [1,[2,[3]],4]. In
// pairing mode documents come in groups of two separated by blank lines.
//
// Usage:
//
//	# Print the ordered-index sum and the decoder key
//	slushy solve input.txt
//
//	# Compare two documents
//	slushy compare '[1,[2,3]]' '[[1],4]'
//
//	# Sort every document in a file, with the default dividers added
//	slushy sort input.txt --divider '[[2]]' --divider '[[6]]'
//
//	# Report every malformed or unpaired document
//	slushy check day13/*.txt
//
//	# Re-solve on every save, recording runs and serving /metrics
//	slushy watch input.txt --record --metrics-addr :9090
//
//	# List recorded runs
//	slushy history --limit 10 --format json
package main

func main() {
	Execute()
}
