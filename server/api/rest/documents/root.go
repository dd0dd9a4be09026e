package documents

type GetRootDocumentResponse map[string]string
