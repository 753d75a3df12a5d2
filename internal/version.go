package internal

// Version is the vocabbuilder release
const Version = "0.3.0"
