package handlers

// AppHandlers groups every resource handler for route registration.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	NewsHandler        *NewsHandler
	ItaHandler         *ItaHandler
	LinkHandler        *LinkHandler
	StaffHandler       *StaffHandler
	JobHandler         *JobHandler
	ActivityHandler    *ActivityHandler
	DownloadHandler    *DownloadHandler
	ProcurementHandler *ProcurementHandler
	DonorHandler       *DonorHandler
	UploadHandler      *UploadHandler
}
