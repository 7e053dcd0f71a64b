package device

var (
	capacityAnswers  = map[uint]uint64{dkiocGetBlockCount: 1953125000, dkiocGetBlockSize: 512}
	capacityBytes    = float64(1000000000000)
	capacityRequests = 2
)
