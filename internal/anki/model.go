package anki

import "time"

const (
	// ModelID identifies the note type so repeated imports reuse it
	ModelID int64 = 1441293701
	// ModelName is the note type name shown in Anki
	ModelName = "Vocabulary Builder Model"
	// DeckID identifies the target deck
	DeckID int64 = 1638698262
	// DefaultDeckName is the deck notes are imported into
	DefaultDeckName = "Vocabulary Builder"

	// modelTypeCloze marks a cloze note type
	modelTypeCloze = 1
)

// FieldNames lists the note fields in order
var FieldNames = []string{"Usage", "Translation", "Stem", "Definition"}

// noteTypeConfig returns the note type definition stored in the col table
func noteTypeConfig(deckID int64) map[string]interface{} {
	flds := make([]map[string]interface{}, 0, len(FieldNames))
	for i, name := range FieldNames {
		flds = append(flds, map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		})
	}

	return map[string]interface{}{
		"id":    ModelID,
		"name":  ModelName,
		"type":  modelTypeCloze,
		"mod":   time.Now().Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   deckID,
		"req":   [][]interface{}{{0, "any", []int{0}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls": []map[string]interface{}{
			{
				"name":  "Vocabulary Builder",
				"ord":   0,
				"qfmt":  questionTemplate,
				"afmt":  answerTemplate,
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": modelCSS,
	}
}

const questionTemplate = `<p class="target question">{{cloze:Usage}}</p>
<br />
<h1 class="one"><span>Definition</span></h1>
<div class="extras">{{Definition}}</div>`

const answerTemplate = `<p class="target question">{{cloze:Usage}}</p>
<p class="source">{{Translation}}</p>
<p>Stem: {{Stem}}</p>
<br />
<h1 class="one"><span>Definition</span></h1>
<div class="extras">{{Definition}}</div>`

// Solarized card styling
const modelCSS = `.question { color: #cb4b16; }

.source {
  font-weight: bold;
  font-family: "Futura", arial, "PT Sans";
  color: #586e75;
  font-size: 20px;
}

.target {
  font-family: Georgia, "PT Serif", "Times New Roman", serif;
  font-size: 24px;
}

.cloze {
  font-weight: bold;
  color: #b58900;
}

.extras {
  font-family: "Futura", arial, "PT Sans";
  font-size: 22px;
  color: #839496;
}

h1 {
  position: relative;
  margin-top: 20px;
  color: #839496; }

h1.one {
  margin-top: 0;
  font-size: 14px; }

h1.one:before {
  content: "";
  display: block;
  border-top: solid 1px #93a1a1;
  width: 100%;
  height: 1px;
  position: absolute;
  top: 50%;
  z-index: 1; }

h1.one span {
  color: #93a1a1;
  background: #eee8d5;
  padding: 0 20px;
  position: relative;
  z-index: 5; }

ul li {
  font-family: "Futura", arial, "PT Sans";
  color: #839496;
  text-align: left; }

@media screen and (max-width: 480px) {
  .target {
    font-size: 22px; }

  .source {
    font-size: 18px; }
}

.card {
  font-family: "Futura", arial, "PT Sans";
  font-size: 20px;
  text-align: center;
  color: #073642;
  background: #eee8d5;
}`
