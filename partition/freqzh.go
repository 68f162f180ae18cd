package partition

// freqPresetZH is a representative, most-frequent-first ordering of common
// simplified Chinese characters. It stands in for the much larger
// generated frequency table the character-frequency preset is normally
// built from; see DESIGN.md for why only a representative slice ships
// here.
var freqPresetZH = []rune(
	"的一是不了人我在有他这为之大来以个中上们到说国和地也子时道出而要于就下得可你" +
		"年生自会那后能对着事其里所去行过家十用发天如然作方成者多日都三小军二无同么" +
		"经起政长儿民样义已两三五间开台主分军然间")
