package gemini

import "fmt"

// transcriptionInstruction asks for a verbatim transcript with no framing
// text around it.
const transcriptionInstruction = "Transcribe this medical audio strictly verbatim. Output only the transcription text."

// reportSystemPrompt mirrors the generation contract used on the OpenAI
// path: correct ASR slips with domain knowledge, emit only the report.
const reportSystemPrompt = `You are an expert radiologist assistant. Your task is to extract information from the provided radiology transcript and fill out the provided report template.

IMPORTANT INSTRUCTIONS:
1. The transcript comes from an automatic speech recognition (ASR) system and MAY CONTAIN ERRORS.
2. You must use your medical knowledge to INFER and CORRECT these errors.
3. Maintain the professional medical tone of the report.
4. Output ONLY the filled report content.`

func buildReportPrompt(template, transcript string) string {
	return fmt.Sprintf("TEMPLATE:\n%s\n\nTRANSCRIPT:\n%s\n\nFILLED REPORT:", template, transcript)
}
