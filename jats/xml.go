package jats

import "encoding/xml"

// Namespaces declared on the article root.
const (
	NamespaceXLink = "http://www.w3.org/1999/xlink"
	NamespaceMML   = "http://www.w3.org/1998/Math/MathML"
	NamespaceXSI   = "http://www.w3.org/2001/XMLSchema-instance"
)

// DTD identifiers of the JATS 1.2 Journal Publishing tag set.
const (
	DTDVersion  = "1.2"
	DTDPublicID = "-//NLM//DTD JATS (Z39.96) Journal Publishing DTD v1.2 20190208//EN"
	DTDSystemID = "JATS-journalpublishing1.dtd"
)

// Doctype is the document type declaration written after the XML header.
const Doctype = `<!DOCTYPE article PUBLIC "` + DTDPublicID + `" "` + DTDSystemID + `">`

// The types below are the XML-marshalable JATS tree. Field order is element
// order: each struct lists its children in the sequence the JATS 1.2 content
// model requires. Fields holding mapped markup use innerxml and must only
// receive well-formed fragments.

type XMLArticle struct {
	XMLName     xml.Name  `xml:"article"`
	XLink       string    `xml:"xmlns:xlink,attr"`
	MML         string    `xml:"xmlns:mml,attr"`
	XSI         string    `xml:"xmlns:xsi,attr"`
	Lang        string    `xml:"xml:lang,attr,omitempty"`
	DTDVersion  string    `xml:"dtd-version,attr"`
	ArticleType string    `xml:"article-type,attr,omitempty"`
	Front       *XMLFront `xml:"front"`
	Body        *XMLBody  `xml:"body,omitempty"`
	Back        *XMLBack  `xml:"back,omitempty"`
}

type XMLFront struct {
	JournalMeta *XMLJournalMeta `xml:"journal-meta"`
	ArticleMeta *XMLArticleMeta `xml:"article-meta"`
}

// journal-meta

type XMLJournalMeta struct {
	JournalIDs    []XMLJournalID        `xml:"journal-id"`
	TitleGroup    *XMLJournalTitleGroup `xml:"journal-title-group,omitempty"`
	ContribGroups []*XMLContribGroup    `xml:"contrib-group,omitempty"`
	ISSNs         []XMLISSN             `xml:"issn,omitempty"`
	Publisher     *XMLPublisher         `xml:"publisher,omitempty"`
	SelfURIs      []XMLSelfURI          `xml:"self-uri,omitempty"`
}

type XMLJournalID struct {
	Type  string `xml:"journal-id-type,attr"`
	Value string `xml:",chardata"`
}

type XMLJournalTitleGroup struct {
	JournalTitles    []XMLLangText        `xml:"journal-title,omitempty"`
	TransTitleGroups []XMLTransTitleGroup `xml:"trans-title-group,omitempty"`
	AbbrevTitles     []XMLLangText        `xml:"abbrev-journal-title,omitempty"`
}

type XMLISSN struct {
	PubType string `xml:"pub-type,attr"`
	Value   string `xml:",chardata"`
}

type XMLPublisher struct {
	Name string           `xml:"publisher-name"`
	Loc  *XMLPublisherLoc `xml:"publisher-loc,omitempty"`
}

type XMLPublisherLoc struct {
	Text    string `xml:",chardata"`
	Country string `xml:"country,omitempty"`
	URI     string `xml:"uri,omitempty"`
}

// article-meta

type XMLArticleMeta struct {
	ArticleIDs      []XMLPubID            `xml:"article-id,omitempty"`
	Categories      *XMLArticleCategories `xml:"article-categories,omitempty"`
	TitleGroup      *XMLTitleGroup        `xml:"title-group,omitempty"`
	ContribGroup    *XMLContribGroup      `xml:"contrib-group,omitempty"`
	Affs            []XMLAff              `xml:"aff,omitempty"`
	PubDates        []XMLDate             `xml:"pub-date,omitempty"`
	Volume          *XMLVolume            `xml:"volume,omitempty"`
	Issue           string                `xml:"issue,omitempty"`
	IssueID         *XMLPubID             `xml:"issue-id,omitempty"`
	IssueTitles     []XMLLangText         `xml:"issue-title,omitempty"`
	FPage           string                `xml:"fpage,omitempty"`
	LPage           string                `xml:"lpage,omitempty"`
	PubHistory      *XMLPubHistory        `xml:"pub-history,omitempty"`
	Permissions     *XMLPermissions       `xml:"permissions,omitempty"`
	SelfURIs        []XMLSelfURI          `xml:"self-uri,omitempty"`
	Abstracts       []XMLAbstract         `xml:"abstract,omitempty"`
	TransAbstracts  []XMLAbstract         `xml:"trans-abstract,omitempty"`
	KwdGroups       []XMLKwdGroup         `xml:"kwd-group,omitempty"`
	Counts          *XMLCounts            `xml:"counts,omitempty"`
	CustomMetaGroup *XMLCustomMetaGroup   `xml:"custom-meta-group,omitempty"`
}

// XMLPubID is any element typed by pub-id-type: article-id, issue-id and
// the pub-id of a citation.
type XMLPubID struct {
	Type  string `xml:"pub-id-type,attr"`
	Value string `xml:",chardata"`
}

type XMLArticleCategories struct {
	SubjGroups []XMLSubjGroup `xml:"subj-group"`
}

type XMLSubjGroup struct {
	Type     string   `xml:"subj-group-type,attr,omitempty"`
	Lang     string   `xml:"xml:lang,attr,omitempty"`
	Subjects []string `xml:"subject"`
}

type XMLTitleGroup struct {
	ArticleTitle     *XMLInline           `xml:"article-title"`
	Subtitles        []XMLInline          `xml:"subtitle,omitempty"`
	TransTitleGroups []XMLTransTitleGroup `xml:"trans-title-group,omitempty"`
}

type XMLTransTitleGroup struct {
	Lang           string      `xml:"xml:lang,attr,omitempty"`
	TransTitle     *XMLInline  `xml:"trans-title"`
	TransSubtitles []XMLInline `xml:"trans-subtitle,omitempty"`
}

// XMLInline holds an inline JATS fragment.
type XMLInline struct {
	Lang    string `xml:"xml:lang,attr,omitempty"`
	Content string `xml:",innerxml"`
}

type XMLLangText struct {
	Lang  string `xml:"xml:lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

type XMLContribGroup struct {
	ContentType string       `xml:"content-type,attr,omitempty"`
	Contribs    []XMLContrib `xml:"contrib"`
}

type XMLContrib struct {
	ContribType      string               `xml:"contrib-type,attr,omitempty"`
	Corresp          string               `xml:"corresp,attr,omitempty"`
	ContribIDs       []XMLContribID       `xml:"contrib-id,omitempty"`
	Name             *XMLPersonName       `xml:"name,omitempty"`
	NameAlternatives *XMLNameAlternatives `xml:"name-alternatives,omitempty"`
	Roles            []XMLRole            `xml:"role,omitempty"`
	Email            string               `xml:"email,omitempty"`
	Xrefs            []XMLXref            `xml:"xref,omitempty"`
	URI              string               `xml:"uri,omitempty"`
	Bios             []XMLBlock           `xml:"bio,omitempty"`
}

type XMLContribID struct {
	Type          string `xml:"contrib-id-type,attr"`
	Authenticated string `xml:"authenticated,attr,omitempty"`
	Value         string `xml:",chardata"`
}

type XMLNameAlternatives struct {
	StringNames []XMLStringName `xml:"string-name,omitempty"`
	Names       []XMLPersonName `xml:"name"`
}

type XMLStringName struct {
	SpecificUse string `xml:"specific-use,attr,omitempty"`
	Value       string `xml:",chardata"`
}

type XMLPersonName struct {
	NameStyle   string `xml:"name-style,attr,omitempty"`
	SpecificUse string `xml:"specific-use,attr,omitempty"`
	Surname     string `xml:"surname,omitempty"`
	GivenNames  string `xml:"given-names,omitempty"`
	Suffix      string `xml:"suffix,omitempty"`
}

type XMLRole struct {
	Vocab               string `xml:"vocab,attr,omitempty"`
	VocabIdentifier     string `xml:"vocab-identifier,attr,omitempty"`
	VocabTerm           string `xml:"vocab-term,attr,omitempty"`
	VocabTermIdentifier string `xml:"vocab-term-identifier,attr,omitempty"`
	SpecificUse         string `xml:"specific-use,attr,omitempty"`
	Value               string `xml:",chardata"`
}

type XMLXref struct {
	RefType string `xml:"ref-type,attr"`
	RID     string `xml:"rid,attr"`
}

// XMLBlock holds a block-level fragment of paragraphs and lists, used for
// bio, abstract and trans-abstract.
type XMLBlock struct {
	AbstractType string `xml:"abstract-type,attr,omitempty"`
	Lang         string `xml:"xml:lang,attr,omitempty"`
	Content      string `xml:",innerxml"`
}

// XMLAbstract is an abstract or trans-abstract.
type XMLAbstract = XMLBlock

type XMLAff struct {
	ID              string              `xml:"id,attr"`
	Institution     *XMLInstitution     `xml:"institution,omitempty"`
	InstitutionWrap *XMLInstitutionWrap `xml:"institution-wrap,omitempty"`
}

type XMLInstitutionWrap struct {
	InstitutionIDs []XMLInstitutionID `xml:"institution-id,omitempty"`
	Institution    *XMLInstitution    `xml:"institution"`
}

type XMLInstitutionID struct {
	Type  string `xml:"institution-id-type,attr"`
	Value string `xml:",chardata"`
}

type XMLInstitution struct {
	ContentType string `xml:"content-type,attr,omitempty"`
	Content     string `xml:",innerxml"`
}

// XMLDate is a pub-date, or a date inside pub-history.
type XMLDate struct {
	DateType          string `xml:"date-type,attr,omitempty"`
	PublicationFormat string `xml:"publication-format,attr,omitempty"`
	Day               string `xml:"day,omitempty"`
	Month             string `xml:"month,omitempty"`
	Year              string `xml:"year"`
}

type XMLVolume struct {
	Seq   string `xml:"seq,attr,omitempty"`
	Value string `xml:",chardata"`
}

type XMLPubHistory struct {
	Events []XMLEvent `xml:"event"`
}

type XMLEvent struct {
	EventType string    `xml:"event-type,attr,omitempty"`
	Dates     []XMLDate `xml:"date"`
}

type XMLPermissions struct {
	CopyrightStatement string       `xml:"copyright-statement,omitempty"`
	CopyrightYear      string       `xml:"copyright-year,omitempty"`
	CopyrightHolder    string       `xml:"copyright-holder,omitempty"`
	Licenses           []XMLLicense `xml:"license,omitempty"`
}

type XMLLicense struct {
	Href     string   `xml:"xlink:href,attr,omitempty"`
	LicenseP []string `xml:"license-p"`
}

type XMLSelfURI struct {
	ContentType string `xml:"content-type,attr,omitempty"`
	Href        string `xml:"xlink:href,attr"`
}

type XMLKwdGroup struct {
	Lang  string   `xml:"xml:lang,attr,omitempty"`
	Title string   `xml:"title,omitempty"`
	Kwds  []string `xml:"kwd"`
}

type XMLCounts struct {
	PageCount *XMLCount `xml:"page-count,omitempty"`
}

type XMLCount struct {
	Count int `xml:"count,attr"`
}

type XMLCustomMetaGroup struct {
	CustomMetas []XMLCustomMeta `xml:"custom-meta"`
}

type XMLCustomMeta struct {
	MetaName  string       `xml:"meta-name"`
	MetaValue XMLMetaValue `xml:"meta-value"`
}

type XMLMetaValue struct {
	Text          string            `xml:",chardata"`
	ExtLink       *XMLExtLink       `xml:"ext-link,omitempty"`
	InlineGraphic *XMLInlineGraphic `xml:"inline-graphic,omitempty"`
}

type XMLExtLink struct {
	Type  string `xml:"ext-link-type,attr,omitempty"`
	Href  string `xml:"xlink:href,attr"`
	Value string `xml:",chardata"`
}

type XMLInlineGraphic struct {
	Href string `xml:"xlink:href,attr"`
}

// body

type XMLBody struct {
	Content string `xml:",innerxml"`
}

// back

type XMLBack struct {
	RefList *XMLRefList `xml:"ref-list"`
}

type XMLRefList struct {
	Refs []XMLRef `xml:"ref"`
}

type XMLRef struct {
	ID              string              `xml:"id,attr"`
	MixedCitation   *XMLMixedCitation   `xml:"mixed-citation,omitempty"`
	ElementCitation *XMLElementCitation `xml:"element-citation,omitempty"`
}

type XMLMixedCitation struct {
	Value string `xml:",chardata"`
}

type XMLElementCitation struct {
	PublicationType string           `xml:"publication-type,attr,omitempty"`
	PersonGroups    []XMLPersonGroup `xml:"person-group,omitempty"`
	Year            string           `xml:"year,omitempty"`
	ArticleTitle    string           `xml:"article-title,omitempty"`
	PartTitle       string           `xml:"part-title,omitempty"`
	DataTitle       string           `xml:"data-title,omitempty"`
	IssueTitle      string           `xml:"issue-title,omitempty"`
	Source          string           `xml:"source,omitempty"`
	PubIDs          []XMLPubID       `xml:"pub-id,omitempty"`
	ExtLinks        []XMLExtLink     `xml:"ext-link,omitempty"`
	FPage           string           `xml:"fpage,omitempty"`
	LPage           string           `xml:"lpage,omitempty"`
	Issue           string           `xml:"issue,omitempty"`
	Volume          string           `xml:"volume,omitempty"`
}

type XMLPersonGroup struct {
	Type  string          `xml:"person-group-type,attr"`
	Names []XMLPersonName `xml:"name"`
}
