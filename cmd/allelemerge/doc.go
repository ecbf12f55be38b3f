// 14 Oct 2026
/*

allelemerge puts together genomic and coding alignments of the alleles of a
gene. The genomic alignment has introns and exons, but there are many
alleles for which only the exons were sequenced. The coding alignment has
these. The result is one alignment, in the genomic alignment's columns,
where every allele gets its own exons and, where it has none of its own,
the introns of the nearest allele that has them.

Input and output are token files, as written by the alignment parser.

Usage:
 allelemerge [options] -g genomic.tok -n coding.tok [-o merged.tok]
 allelemerge [options] -c genes.yaml

Flags:
  -c filename
    	yaml file listing genes. Each has a name, genomic, coding, output
    	and optionally report file.
  -g filename
    	genomic token file for a single gene
  -n filename
    	coding token file for the same gene
  -name string
    	gene name for log messages. Taken from the genomic file name if
    	not given.
  -o filename
    	Write output to filename. If not given, write to standard output.
  -partial
    	Accept alleles that have tokens left over after the last segment.
  -r filename
    	write a csv table saying how much of each segment every allele
    	covers
  -strict
    	If any allele cannot be merged, exit with failure. Without this,
    	failed alleles are logged and left out of the output.
  -t N
    	merge N alleles at once. The default is one per CPU.
  -v N
    	verbosity. 0 only warnings, 1 (default) progress, 2 every allele.

The reference allele is named in the header of both files. The files have
to agree on the reference and the date, or we do not start. If the
reference itself does not come through a merge unchanged, the gene is
skipped.

Flags on the command line are added to what is in a yaml file. A gene given
with -g and -n is merged after the genes from the file.
*/
package main
