// Package cnet defines the output characteristics of the PNW-Cnet model:
// the target class vocabularies for each supported model version and
// helpers for matching a set of score columns to a known vocabulary.
package cnet

import "fmt"

// Supported model versions.
const (
	V4 = "v4"
	V5 = "v5"
)

var v4ClassNames = []string{
	"AEAC", "BRCA", "BRMA", "BUVI", "CAGU", "CALU", "CAUS",
	"CCOO", "CHFA", "CHMI", "CHMI_IRREG", "COAU", "COAU2",
	"COCO", "CYST", "DEFU", "DOG", "DRPU", "DRUM", "FLY",
	"FROG", "GLGN", "HOSA", "HYPI", "INSP", "IXNA", "MEKE",
	"MYTO", "NUCO", "OCPR", "ORPI", "PAFA", "PECA", "PHNU",
	"PIMA", "POEC", "PSFL", "SHOT", "SITT", "SPRU", "STOC",
	"STOC_IRREG", "STVA", "STVA_IRREG", "TADO1", "TADO2",
	"TAMI", "TUMI", "WHIS", "YARD", "ZEMA",
}

var v5ClassNames = []string{
	"ACCO1", "ACGE1", "ACGE2", "ACST1", "AEAC1", "AEAC2",
	"Airplane", "ANCA1", "ASOT1", "BOUM1", "BRCA1",
	"BRMA1", "BRMA2", "BUJA1", "BUJA2", "Bullfrog",
	"BUVI1", "BUVI2", "CACA1", "CAGU1", "CAGU2", "CAGU3",
	"CALA1", "CALU1", "CAPU1", "CAUS1", "CAUS2", "CCOO1",
	"CCOO2", "CECA1", "Chainsaw", "CHFA1", "Chicken",
	"CHMI1", "CHMI2", "COAU1", "COAU2", "COBR1", "COCO1",
	"COSO1", "Cow", "Creek", "Cricket", "CYST1", "CYST2",
	"DEFU1", "DEFU2", "Dog", "DRPU1", "Drum", "EMDI1",
	"EMOB1", "FACO1", "FASP1", "Fly", "Frog", "GADE1",
	"GLGN1", "Growler", "Gunshot", "HALE1", "HAPU1",
	"HEVE1", "Highway", "Horn", "Human", "HYPI1", "IXNA1",
	"IXNA2", "JUHY1", "LEAL1", "LECE1", "LEVI1", "LEVI2",
	"LOCU1", "MEFO1", "MEGA1", "MEKE1", "MEKE2", "MEKE3",
	"MYTO1", "NUCO1", "OCPR1", "ODOC1", "ORPI1", "ORPI2",
	"PAFA1", "PAFA2", "PAHA1", "PECA1", "PHME1", "PHNU1",
	"PILU1", "PILU2", "PIMA1", "PIMA2", "POEC1", "POEC2",
	"PSFL1", "Rain", "Raptor", "SICU1", "SITT1", "SITT2",
	"SPHY1", "SPHY2", "SPPA1", "SPPI1", "SPTH1", "STDE1",
	"STNE1", "STNE2", "STOC_4Note", "STOC_Series",
	"Strix_Bark", "Strix_Whistle", "STVA_8Note",
	"STVA_Insp", "STVA_Series", "Survey_Tone", "TADO1",
	"TADO2", "TAMI1", "Thunder", "TRAE1", "Train", "Tree",
	"TUMI1", "TUMI2", "URAM1", "VIHU1", "Wildcat",
	"Yarder", "ZEMA1", "ZOLE1",
}

// ClassNames returns a fresh copy of the class vocabulary for the given
// model version. Callers are free to reorder the returned slice.
func ClassNames(version string) ([]string, error) {
	switch version {
	case V4:
		return append([]string(nil), v4ClassNames...), nil
	case V5:
		return append([]string(nil), v5ClassNames...), nil
	default:
		return nil, fmt.Errorf("unknown PNW-Cnet version %q", version)
	}
}

// VersionForClassCount maps a score column count to the model version that
// produced it, or "" if the count matches no known vocabulary.
func VersionForClassCount(n int) string {
	switch n {
	case len(v4ClassNames):
		return V4
	case len(v5ClassNames):
		return V5
	default:
		return ""
	}
}

// ResolveClassNames returns the vocabulary matching a score column count.
// Unknown counts fall back to sequential Class_NNN labels so tables from
// future model versions remain usable.
func ResolveClassNames(n int) []string {
	if v := VersionForClassCount(n); v != "" {
		names, _ := ClassNames(v)
		return names
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Class_%03d", i+1)
	}
	return names
}
