package driver

// Command keywords.
const (
	CmdAddStation    = "aggiungi-stazione"
	CmdRemoveStation = "demolisci-stazione"
	CmdAddVehicle    = "aggiungi-auto"
	CmdRemoveVehicle = "rottama-auto"
	CmdPlanRoute     = "pianifica-percorso"
)

// Replies.
const (
	ReplyAdded       = "aggiunta"
	ReplyNotAdded    = "non aggiunta"
	ReplyRemoved     = "demolita"
	ReplyNotRemoved  = "non demolita"
	ReplyScrapped    = "rottamata"
	ReplyNotScrapped = "non rottamata"
	ReplyNoRoute     = "nessun percorso"
)

// MaxLineSize is the longest command line accepted.
const MaxLineSize = 1 << 20
