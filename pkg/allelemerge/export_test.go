package allelemerge

var Setup = setup
