// Package template 提供文档类型到起草指令的静态映射
package template

// 模板标识
const (
	NDA            = "nda"
	Contract       = "contract"
	Proposal       = "proposal"
	Report         = "report"
	Minutes        = "minutes"
	Email          = "email"
	Legal          = "legal"
	TermsOfService = "terms-of-service"
	SOW            = "sow"
	Custom         = "custom"
)

// instructions 模板指令表
// 纯配置数据，不在运行时变更
var instructions = map[string]string{
	NDA: `Draft a Non-Disclosure Agreement.
Required sections: Parties, Definition of Confidential Information, Obligations of Receiving Party, Exclusions, Term and Termination, Return of Materials, Remedies, Governing Law, Signatures.
Tone: formal legal language, numbered clauses.`,

	Contract: `Draft a general commercial contract.
Required sections: Parties, Recitals, Scope of Services, Payment Terms, Term and Termination, Warranties, Limitation of Liability, Indemnification, Dispute Resolution, Governing Law, Signatures.
Tone: formal legal language, numbered clauses.`,

	Proposal: `Draft a business proposal.
Required sections: Executive Summary, Background, Proposed Solution, Deliverables, Timeline, Pricing, Terms, Next Steps.
Tone: persuasive and professional.`,

	Report: `Draft a professional report.
Required sections: Title, Executive Summary, Introduction, Findings, Analysis, Recommendations, Conclusion.
Tone: objective and analytical.`,

	Minutes: `Draft meeting minutes.
Required sections: Meeting Details (date, time, attendees), Agenda, Discussion Summary, Decisions Made, Action Items with owners, Next Meeting.
Tone: concise and factual.`,

	Email: `Draft a professional email.
Required structure: subject line, greeting, body paragraphs, closing, signature placeholder.
Tone: professional and courteous.`,

	Legal: `Draft a legal document.
Required sections: Parties, Recitals, Operative Provisions, Representations and Warranties, General Provisions, Governing Law, Execution.
Tone: formal legal language, numbered clauses, defined terms capitalized.`,

	TermsOfService: `Draft Terms of Service for an online product.
Required sections: Acceptance of Terms, Description of Service, User Accounts, Acceptable Use, Intellectual Property, Payment and Billing, Disclaimers, Limitation of Liability, Termination, Changes to Terms, Governing Law, Contact.
Tone: formal legal language, plainly structured.`,

	SOW: `Draft a Statement of Work.
Required sections: Project Overview, Scope of Work, Deliverables, Milestones and Schedule, Acceptance Criteria, Fees and Payment Schedule, Assumptions, Change Management, Signatures.
Tone: precise and contractual.`,

	Custom: `Draft a custom document based on the conversation and instructions provided.
Structure the document with a clear title, logical sections with headings, and a professional closing.
Tone: professional, matched to the apparent purpose of the document.`,
}

// Lookup 获取模板指令
// 未知标识回退到 custom 指令
func Lookup(templateID string) string {
	if text, ok := instructions[templateID]; ok {
		return text
	}
	return instructions[Custom]
}

// Known 判断模板标识是否已注册
func Known(templateID string) bool {
	_, ok := instructions[templateID]
	return ok
}

// IDs 返回全部模板标识
func IDs() []string {
	ids := make([]string, 0, len(instructions))
	for id := range instructions {
		ids = append(ids, id)
	}
	return ids
}
