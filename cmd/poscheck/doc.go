// 15 Oct 2026
/*

poscheck reads token files and checks, for every allele, that each token
starts where the one before it stopped.

Usage:
 poscheck [options] file.tok [file.tok...]

Flags:
  -o filename
    	Write output to filename. If not given, write to standard output.
  -q	Only print alleles that fail.

There is one line per allele with the file name, the allele name, the
number of segments and either "ok" and the last position, or the token
that was in the wrong place. The exit status is a failure if any allele
was bad.
*/
package main
