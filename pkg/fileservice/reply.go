package fileservice

// Reply is a response carrying an application-level result: the success
// flag and the server error text.
type Reply interface {
	Message
	Outcome() (success bool, errMsg string)
}

func (m *OperationResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *CreateResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *ListDirectoryResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *PutFileResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *GetVersionResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *ListVersionsResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *StatResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *ExistsResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *MetadataValueResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *MetadataMapResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *CheckPermissionResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *StorageUsageResponse) Outcome() (bool, string) { return m.Success, m.Error }

func (m *RestoreToVersionResponse) Outcome() (bool, string) { return m.Success, m.Error }
