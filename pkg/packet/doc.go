// Package packet is the entry point for reading and ordering packet documents.
//
// The work is split across subpackages: ast holds the value tree, parser reads
// text into trees, order compares them and errors defines the failure types.
// The functions here cover the common one-call cases.
//
// Comparing two documents:
//
//	ord, err := packet.CompareText("[1,[2,3]]", "[1,4]")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(ord) // less
//
// Sorting a file's worth of documents, blank lines ignored:
//
//	docs, err := packet.SortText(input)
package packet
