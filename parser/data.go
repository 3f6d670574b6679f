package parser

// ParseData extracts the $DATA attribute, searching from search_start
// (normally the end of $FILE_NAME). Resident data carries only a
// size; non resident data carries the actual and initialized sizes
// and the materialized cluster list decoded from the run list.
func ParseData(entry []byte, search_start int) (DataInfo, error) {
	attribute, _, err := FindAttribute(ATTR_TYPE_DATA, entry, search_start)
	if err != nil {
		return nil, err
	}

	if attribute.IsResident() {
		return ResidentData{
			Size: int64(attribute.Content_size()),
		}, nil
	}

	// Non resident attributes have a 64 byte header followed by the
	// run list.
	if len(attribute.buffer) < 64 {
		return nil, MalformedAttributeError
	}

	runlist_offset := int(attribute.Runlist_offset())
	if runlist_offset <= 0 || runlist_offset > len(attribute.buffer) {
		return nil, RunListError
	}

	runs, err := DecodeRunList(attribute.buffer[runlist_offset:])
	if err != nil {
		return nil, err
	}

	clusters, sparse := MaterializeClusters(runs)
	return NonResidentData{
		Size:            int64(attribute.Actual_size()),
		InitializedSize: int64(attribute.Initialized_size()),
		Clusters:        clusters,
		SparseClusters:  sparse,
	}, nil
}
